package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelValidate(t *testing.T) {
	valid := Model{
		ModelID:       "qwen2.5:7b",
		BaseURL:       "http://localhost:8080/v1",
		APIKey:        "unused",
		ContextLength: 8096,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Model)
		want   string
	}{
		{"missing model id", func(m *Model) { m.ModelID = "" }, "ModelID"},
		{"missing base url", func(m *Model) { m.BaseURL = "" }, "BaseURL"},
		{"zero context length", func(m *Model) { m.ContextLength = 0 }, "ContextLength"},
		{"negative context length", func(m *Model) { m.ContextLength = -1 }, "ContextLength"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("RAGMESH_TEST_KEY", "secret")
	v, err := RequireEnv("RAGMESH_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	_, err = RequireEnv("RAGMESH_TEST_KEY_UNSET")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAGMESH_TEST_KEY_UNSET")
}

func TestLoadEnvMissingFileTolerated(t *testing.T) {
	assert.NoError(t, LoadEnv("testdata/does-not-exist.env"))
}
