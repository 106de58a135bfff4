package datamodel

type YAMLDataModel struct {
	Tables []YAMLTable `yaml:"tables"`
}

type YAMLTable struct {
	Name   string      `yaml:"name"`
	File   string      `yaml:"file"`
	Fields []YAMLField `yaml:"fields"`
}

type YAMLField struct {
	Name     string        `yaml:"name"`
	Aliases  []string      `yaml:"aliases"`
	Required bool          `yaml:"required"`
	Values   *YAMLValueMap `yaml:"values"`
}

type YAMLValueMap struct {
	Labels      map[string]string `yaml:"labels"`
	Passthrough bool              `yaml:"passthrough"`
}
