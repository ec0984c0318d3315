package core

import (
	"fmt"

	"github.com/chess10kp/gocalc/internal/config"
	"github.com/gotk3/gotk3/gtk"
)

func newAboutDialog(parent *gtk.Window, about config.AboutConfig) (*gtk.AboutDialog, error) {
	dialog, err := gtk.AboutDialogNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create about dialog: %w", err)
	}

	dialog.SetTransientFor(parent)
	dialog.SetModal(true)
	dialog.SetProgramName(about.Name)
	dialog.SetVersion(about.Version)
	dialog.SetComments(about.Comments)
	dialog.SetLicense(about.License)
	if about.LicenseURL != "" {
		dialog.SetWebsite(about.LicenseURL)
	}

	author := about.Author
	if about.Email != "" {
		author = fmt.Sprintf("%s <%s>", about.Author, about.Email)
	}
	dialog.SetAuthors([]string{author})

	return dialog, nil
}
