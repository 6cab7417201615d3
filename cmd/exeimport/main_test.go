package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/exe-legacy-converter/converter"
	"github.com/rgonek/exe-legacy-converter/legacy"
)

func TestResolveConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, workers, err := resolveConfig(fileConfig{}, "", 0)
		require.NoError(t, err)
		assert.Equal(t, converter.Config{}, cfg)
		assert.Equal(t, defaultConcurrency, workers)
	})

	t.Run("file values", func(t *testing.T) {
		cfg, workers, err := resolveConfig(fileConfig{DefaultLanguage: "es", Concurrency: 8}, "", 0)
		require.NoError(t, err)
		assert.Equal(t, "es", cfg.DefaultLanguage)
		assert.Equal(t, 8, workers)
	})

	t.Run("flags override file", func(t *testing.T) {
		cfg, workers, err := resolveConfig(fileConfig{DefaultLanguage: "es", Concurrency: 8}, "ca", 2)
		require.NoError(t, err)
		assert.Equal(t, "ca", cfg.DefaultLanguage)
		assert.Equal(t, 2, workers)
	})

	t.Run("negative concurrency", func(t *testing.T) {
		_, _, err := resolveConfig(fileConfig{}, "", -1)
		require.Error(t, err)
		assert.Equal(t, "concurrency must be positive, got -1", err.Error())
	})
}

func TestLoadFileConfig(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := loadFileConfig("")
		require.NoError(t, err)
		assert.Equal(t, fileConfig{}, cfg)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exeimport.yaml")
		require.NoError(t, os.WriteFile(path, []byte("defaultLanguage: gl\nconcurrency: 3\n"), 0o600))

		cfg, err := loadFileConfig(path)
		require.NoError(t, err)
		assert.Equal(t, fileConfig{DefaultLanguage: "gl", Concurrency: 3}, cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("concurrency: [1, 2"), 0o600))

		_, err := loadFileConfig(path)
		require.Error(t, err)
	})
}

const packageXML = `<?xml version="1.0" encoding="UTF-8"?>
<instance class="exe.engine.package.Package" reference="1">
  <dictionary>
    <string role="key" value="idevices"/>
    <list>
      <instance class="exe.engine.freetextidevice.FreeTextIdevice" reference="2">
        <dictionary>
          <string role="key" value="_id"/>
          <unicode value="17"/>
          <string role="key" value="content"/>
          <instance class="exe.engine.field.TextAreaField" reference="3">
            <dictionary>
              <string role="key" value="content_w_resourcePaths"/>
              <unicode value="&lt;p&gt;Hello&lt;/p&gt;"/>
            </dictionary>
          </instance>
        </dictionary>
      </instance>
      <instance class="exe.engine.jsidevice.JsIdevice" reference="4">
        <dictionary>
          <string role="key" value="_iDeviceDir"/>
          <unicode value="/usr/share/exe/idevices/flipcards"/>
        </dictionary>
      </instance>
    </list>
  </dictionary>
</instance>`

func TestCollectComponents(t *testing.T) {
	root, err := legacy.ParseString(packageXML)
	require.NoError(t, err)

	components := collectComponents(root)
	require.Len(t, components, 2)

	assert.Equal(t, "17", components[0].ID)
	assert.Equal(t, "exe.engine.freetextidevice.FreeTextIdevice", components[0].Class)
	assert.Empty(t, components[0].TypeHint)

	assert.NotEmpty(t, components[1].ID)
	assert.Equal(t, "/usr/share/exe/idevices/flipcards", components[1].TypeHint)
}

func TestConvertAll(t *testing.T) {
	root, err := legacy.ParseString(packageXML)
	require.NoError(t, err)

	conv, err := converter.New(converter.Config{})
	require.NoError(t, err)

	converted, err := convertAll(context.Background(), conv, collectComponents(root), "es", 2)
	require.NoError(t, err)
	require.Len(t, converted, 2)

	assert.Equal(t, "free-text", converted[0].Result.Handler)
	assert.Equal(t, "<p>Hello</p>", converted[0].Result.Component.HTMLView)
	assert.Equal(t, "game:flipcards", converted[1].Result.Handler)
	assert.Equal(t, "flipcards", converted[1].Result.Component.TargetType)
}

func TestConvertAllCanceled(t *testing.T) {
	root, err := legacy.ParseString(packageXML)
	require.NoError(t, err)

	conv, err := converter.New(converter.Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = convertAll(ctx, conv, collectComponents(root), "", 1)
	require.ErrorIs(t, err, context.Canceled)
}
