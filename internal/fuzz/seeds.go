package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"",
	"x = 1",
	"If a = 1 And b <> 2 Then\nElseIf c Then\nElse\nEndIf",
	"For i = 1 To 10 Step -1\nEndFor",
	"While x < 3\n  x = x + 1\nEndWhile",
	"Sub S\n  GoTo l\nl:\nEndSub\nS()",
	"TextWindow.WriteLine(Math.Max(1, 2))",
	"arr[1][\"k\"] = -(2 * 3)",
	"Sub\nEndSub\nEndSub",
	"\"open\n$\n1.2.3",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, src := range languageSeeds {
		f.Add([]byte(src))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".sb") {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
