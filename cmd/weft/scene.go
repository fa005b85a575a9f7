package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/grindlemire/weft"
	"github.com/grindlemire/weft/internal/style"
	"gopkg.in/yaml.v3"
)

// scene is a view described in YAML.
type scene struct {
	Viewport struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`
	SheetFiles []string     `yaml:"sheet_files"`
	RootSheets []string     `yaml:"root_sheets"`
	Root       []*sceneNode `yaml:"root"`

	sheets []weft.Sheet
	nodes  int
}

type sceneNode struct {
	Key      string       `yaml:"key"`
	Kind     string       `yaml:"kind"`
	Classes  []string     `yaml:"classes"`
	Sheets   []string     `yaml:"sheets"`
	Style    yaml.Node    `yaml:"style"`
	Text     string       `yaml:"text"`
	Role     string       `yaml:"role"`
	Label    string       `yaml:"label"`
	Children []*sceneNode `yaml:"children"`

	path string
}

// parseScene decodes a scene. Sheets may be given inline, in the sheet
// file format, or by path relative to dir.
func parseScene(data []byte, dir string) (*scene, error) {
	var sc scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "decode scene")
	}
	inline, err := style.ParseSheets(data)
	if err != nil {
		return nil, err
	}
	sc.sheets = inline
	for _, p := range sc.SheetFiles {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		sheets, err := style.LoadSheetFile(p)
		if err != nil {
			return nil, err
		}
		sc.sheets = append(sc.sheets, sheets...)
	}
	if err := sc.index("", sc.Root); err != nil {
		return nil, err
	}
	return &sc, nil
}

func loadScene(path string) (*scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene")
	}
	sc, err := parseScene(data, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return sc, nil
}

// index names every node by its path and checks it can be declared.
func (sc *scene) index(prefix string, nodes []*sceneNode) error {
	for i, n := range nodes {
		if n.Kind == "" {
			return errors.Newf("node %s/%d: kind is required", prefix, i)
		}
		if n.Key == "" {
			n.Key = n.Kind + strconv.Itoa(i)
		}
		n.path = prefix + "/" + n.Key
		if n.Style.Kind != 0 && n.Style.Kind != yaml.MappingNode {
			return errors.Newf("node %s line %d: style must be a mapping", n.path, n.Style.Line)
		}
		sc.nodes++
		if err := sc.index(n.path, n.Children); err != nil {
			return err
		}
	}
	return nil
}

// options returns the session options the scene asks for.
func (sc *scene) options() []weft.SessionOption {
	var opts []weft.SessionOption
	if sc.Viewport.Width != 0 || sc.Viewport.Height != 0 {
		opts = append(opts, weft.WithViewport(sc.Viewport.Width, sc.Viewport.Height))
	}
	if len(sc.sheets) > 0 {
		opts = append(opts, weft.WithSheets(sc.sheets...))
	}
	if len(sc.RootSheets) > 0 {
		opts = append(opts, weft.WithRootSheets(sc.RootSheets...))
	}
	return opts
}

// view returns a view declaring the scene. Every read of tick makes the
// root rebuild when it changes.
func (sc *scene) view(tick *weft.Var[int]) func(ui *weft.Ui) {
	return func(ui *weft.Ui) {
		if tick != nil {
			tick.Read(ui)
		}
		declare(ui, sc.Root)
	}
}

func declare(ui *weft.Ui, nodes []*sceneNode) {
	for _, sn := range nodes {
		ui.Node(weft.KeyOf(sn.Key), sn.Kind, func(n *weft.NodeBuilder) {
			n.Class(sn.Classes...).Sheet(sn.Sheets...).Text(sn.Text).Role(sn.Role).Label(sn.Label)
			for i := 0; i+1 < len(sn.Style.Content); i += 2 {
				n.Style(sn.Style.Content[i].Value, sn.Style.Content[i+1].Value)
			}
			if len(sn.Children) > 0 {
				n.Children(func(ui *weft.Ui) { declare(ui, sn.Children) })
			}
		})
	}
}

// walk visits the scene's nodes depth first with their NodeIDs.
func (sc *scene) walk(fn func(n *sceneNode, id weft.NodeID, depth int)) {
	var rec func(nodes []*sceneNode, keys []weft.Key)
	rec = func(nodes []*sceneNode, keys []weft.Key) {
		for _, n := range nodes {
			path := append(keys[:len(keys):len(keys)], weft.KeyOf(n.Key))
			fn(n, weft.Path(path...), len(path))
			rec(n.Children, path)
		}
	}
	rec(sc.Root, nil)
}
