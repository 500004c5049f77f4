// Package config загружает конфигурацию из базового YAML-файла, файла окружения
// поверх него и переменных окружения.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"newsletter/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errReadFile       = "failed to read configuration file"
	errParseFile      = "failed to parse configuration file"
	errEncodeMerged   = "failed to encode merged configuration"
	errDecodeSettings = "failed to decode configuration"
	errApplyEnv       = "failed to apply environment overrides"

	attrDirectory = "directory"
	attrBase      = "base"
	attrOverlay   = "overlay"
)

// BaseFile - имя базового файла конфигурации.
const BaseFile = "base.yaml"

// ErrLoad оборачивает любую ошибку загрузки конфигурации.
var ErrLoad = errors.New("configuration resolution failed")

// LoadLayered читает dir/base.yaml, накладывает на него dir/overlay,
// декодирует результат в T и применяет переменные окружения (теги cleanenv).
// Ключи overlay побеждают; вложенные таблицы сливаются, списки заменяются целиком.
func LoadLayered[T any](ctx context.Context, dir, overlay string) (*T, error) {
	log := logger.Log(ctx)

	basePath := filepath.Join(dir, BaseFile)
	overlayPath := filepath.Join(dir, overlay)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrDirectory, dir),
		zap.String(attrBase, basePath),
		zap.String(attrOverlay, overlayPath))

	cfg, err := loadLayered[T](basePath, overlayPath)
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrOverlay, overlayPath))
	return cfg, nil
}

func loadLayered[T any](basePath, overlayPath string) (*T, error) {
	base, err := readTree(basePath)
	if err != nil {
		return nil, err
	}

	over, err := readTree(overlayPath)
	if err != nil {
		return nil, err
	}

	merged, err := yaml.Marshal(Merge(base, over))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errEncodeMerged, err)
	}

	var cfg T
	if err := cleanenv.ParseYAML(bytes.NewReader(merged), &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errDecodeSettings, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errApplyEnv, err)
	}

	return &cfg, nil
}

func readTree(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", errReadFile, path, err)
	}

	tree := map[string]any{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%s %s: %w", errParseFile, path, err)
	}
	return tree, nil
}
