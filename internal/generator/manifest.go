package generator

import "gopkg.in/yaml.v3"

type manifest struct {
	Classes []ClassResult `yaml:"classes"`
}

// renderManifest lists every generated class with its method symbol ids, for
// the native side of the bindings to look methods up by id.
func renderManifest(classes []ClassResult) (string, error) {
	out, err := yaml.Marshal(manifest{Classes: classes})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
