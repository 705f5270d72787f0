package storage

import (
	"errors"
	"testing"
)

func TestNewCloudinary_RequiresCredentials(t *testing.T) {
	_, err := NewCloudinary(CloudinaryConfig{CloudName: "demo", APIKey: "key"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewCloudinary_DefaultFolder(t *testing.T) {
	c, err := NewCloudinary(CloudinaryConfig{CloudName: "demo", APIKey: "key", APISecret: "secret"})
	if err != nil {
		t.Fatalf("new cloudinary: %v", err)
	}
	if c.folder != defaultFolder {
		t.Fatalf("expected folder %q, got %q", defaultFolder, c.folder)
	}
}
