package reference

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadVocabularies читает все словари из папки (*.yaml / *.yml).
func LoadVocabularies(dir string) (map[string]Vocabulary, error) {
	result := make(map[string]Vocabulary)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		var v Vocabulary
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		name := v.Name
		if name == "" {
			name = strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		}
		result[name] = v
	}
	return result, nil
}

// Nouns сводит словари в один плоский список для резолвера: порядок —
// по имени словаря, внутри — как в файле; дубликаты и пустые выбрасываем.
func Nouns(vocabs map[string]Vocabulary) []string {
	names := make([]string, 0, len(vocabs))
	for n := range vocabs {
		names = append(names, n)
	}
	sort.Strings(names)

	seen := make(map[string]struct{})
	var out []string
	for _, n := range names {
		for _, w := range vocabs[n].Nouns {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
