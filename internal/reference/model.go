package reference

// Vocabulary описывает один словарь сущностных имён для Entity Resolver'а.
// Имя словаря — из поля name или из имени файла.
type Vocabulary struct {
	Name  string   `yaml:"name"`
	Nouns []string `yaml:"nouns"`
}
