package testsupport

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden returns the expected output stored next to a fixture.
func LoadGolden(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GoldenPairs lists every fixture in dir with the given extension, paired
// with the golden file that shares its base name.
func GoldenPairs(dir, fixtureExt, goldenExt string) ([][2]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+fixtureExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	pairs := make([][2]string, 0, len(matches))
	for _, fixture := range matches {
		golden := strings.TrimSuffix(fixture, fixtureExt) + goldenExt
		pairs = append(pairs, [2]string{fixture, golden})
	}
	return pairs, nil
}
