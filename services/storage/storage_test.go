package storage

import (
	"errors"
	"testing"

	"amedick/config"
)

func TestPublicName(t *testing.T) {
	tests := []struct {
		file File
		want string
	}{
		{File{Field: "govtIdProof", Filename: "my id.pdf"}, "govtIdProof_my_id"},
		{File{Field: "profilePhoto", Filename: "../../etc/passwd"}, "profilePhoto_passwd"},
		{File{Field: "degreeCertificate", Filename: ""}, "degreeCertificate"},
	}
	for _, tt := range tests {
		if got := publicName(tt.file); got != tt.want {
			t.Errorf("publicName(%q) = %q, want %q", tt.file.Filename, got, tt.want)
		}
	}
}

func TestNewCloudinaryStorageRequiresCredentials(t *testing.T) {
	config.AppConfig.CloudinaryCloudName = ""
	if _, err := NewCloudinaryStorageFromConfig(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
