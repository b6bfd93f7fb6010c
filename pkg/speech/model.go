package speech

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ModelPath resolves the whisper.cpp model file for cfg.
//
// A model that looks like a path (it has a directory part or a .bin suffix)
// is used as is. Otherwise the model is a size name such as "small" and
// resolves to <ModelDir>/ggml-<model>.bin.
func ModelPath(cfg Config) string {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "small"
	}
	if strings.ContainsRune(model, os.PathSeparator) || strings.HasSuffix(model, ".bin") {
		return model
	}
	return filepath.Join(cfg.ModelDir, "ggml-"+model+".bin")
}

func checkModelFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("whisper model %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("whisper model %s: is a directory", path)
	}
	return nil
}
