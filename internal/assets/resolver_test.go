package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true, want false")
		}
	})

	t.Run("with custom path", func(t *testing.T) {
		t.Parallel()

		r, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !r.HasCustomLoader() {
			t.Error("HasCustomLoader() = false, want true")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadTemplate(t *testing.T) {
	t.Parallel()

	embeddedBook, err := defaultLoader.LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}

	custom := t.TempDir()
	writeTemplate(t, custom, "book", "// custom book\n")
	writeTemplate(t, custom, "novel", "// novel\n")
	writeTemplate(t, custom, "empty", "")

	r, err := NewAssetResolver(custom)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  error
	}{
		{"custom overrides embedded", "book", "// custom book\n", nil},
		{"custom only", "novel", "// novel\n", nil},
		{"missing everywhere", "missing", "", ErrTemplateNotFound},
		{"validation error not fallen back", "../book", "", ErrInvalidAssetName},
		{"empty custom not fallen back", "empty", "", ErrEmptyTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.LoadTemplate(tt.template)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.template, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) error = %v", tt.template, err)
			}
			if got != tt.want {
				t.Errorf("LoadTemplate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		fallback, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		got, err := fallback.LoadTemplate(DefaultTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if got != embeddedBook {
			t.Error("LoadTemplate() did not return the embedded book template")
		}
	})
}

func TestLoaders_ImplementTemplateLoader(t *testing.T) {
	t.Parallel()

	var _ TemplateLoader = (*EmbeddedLoader)(nil)
	var _ TemplateLoader = (*FilesystemLoader)(nil)
	var _ TemplateLoader = (*AssetResolver)(nil)
}
