package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvService_TypedGetters(t *testing.T) {
	t.Setenv("TC_BOOL", "true")
	t.Setenv("TC_INT", "42")
	t.Setenv("TC_DUR", "90s")
	t.Setenv("TC_BAD_INT", "forty")

	e := &EnvService{}

	assert.True(t, e.GetBool("TC_BOOL", false))
	assert.Equal(t, 42, e.GetInt("TC_INT", 0))
	assert.Equal(t, 7, e.GetInt("TC_BAD_INT", 7))
	assert.Equal(t, 90*time.Second, e.GetDuration("TC_DUR", time.Second))
	assert.Equal(t, "fallback", e.GetWithDefault("TC_UNSET_KEY", "fallback"))
}

func TestNewEnvService_OverlaysAppEnvFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(dir, ".env"), "TC_MODEL=base\n")
	writeFile(t, filepath.Join(dir, ".env.test"), "TC_MODEL=overlay\n")
	t.Setenv("APP_ENV", "test")
	t.Setenv("TC_MODEL", "")

	e := NewEnvService()

	assert.Equal(t, "test", e.AppEnv())
	assert.Equal(t, "overlay", e.Get("TC_MODEL"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
