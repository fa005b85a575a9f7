package style

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// sheetFile is the on-disk form of a set of sheets:
//
//	sheets:
//	  - name: app
//	    rules:
//	      - selector: "button.primary:hover"
//	        style:
//	          color: "#ff0000"
//	          padding: 4 8
type sheetFile struct {
	Sheets []struct {
		Name  string `yaml:"name"`
		Rules []struct {
			Selector string `yaml:"selector"`
			// A node keeps declarations in file order.
			Style yaml.Node `yaml:"style"`
		} `yaml:"rules"`
	} `yaml:"sheets"`
}

// ParseSheets decodes sheets from YAML.
func ParseSheets(data []byte) ([]Sheet, error) {
	var f sheetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode sheets")
	}
	sheets := make([]Sheet, 0, len(f.Sheets))
	for _, fs := range f.Sheets {
		if fs.Name == "" {
			return nil, errors.New("decode sheets: sheet without a name")
		}
		s := Sheet{Name: fs.Name}
		for _, fr := range fs.Rules {
			sel, err := ParseSelector(fr.Selector)
			if err != nil {
				return nil, errors.Wrapf(err, "sheet %q", fs.Name)
			}
			r := Rule{Selector: sel}
			if fr.Style.Kind != 0 && fr.Style.Kind != yaml.MappingNode {
				return nil, errors.Newf("sheet %q line %d: style must be a mapping", fs.Name, fr.Style.Line)
			}
			for i := 0; i+1 < len(fr.Style.Content); i += 2 {
				k, v := fr.Style.Content[i], fr.Style.Content[i+1]
				decls, err := Declare(k.Value, v.Value)
				if err != nil {
					return nil, errors.Wrapf(err, "sheet %q line %d", fs.Name, k.Line)
				}
				r.Decls = append(r.Decls, decls...)
			}
			s.Rules = append(s.Rules, r)
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

// LoadSheetFile reads and decodes a YAML sheet file.
func LoadSheetFile(path string) ([]Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet file")
	}
	sheets, err := ParseSheets(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return sheets, nil
}
