package repo

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ArchonAI/archon-cli/archive"
	"github.com/ArchonAI/archon-cli/cmd/validator"
)

func newUploadCommand(ops *repoOpts, preRunE validator.Validator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a local project for analysis.",
		Long: `Upload a local project for analysis.

A directory argument is zipped before uploading, skipping version control
and dependency directories. An archive file (.zip, .tar, .tar.gz) is
uploaded as-is.

Examples:
  archon repo upload .
  archon repo upload dist/widget.tar.gz`,
		PreRunE: preRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := uploadProject(cmd, ops, args[0])
			trackRepoEvent(cmd, err)
			return err
		},
		Args: cobra.ExactArgs(1),
	}

	return cmd
}

func uploadProject(cmd *cobra.Command, ops *repoOpts, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "reading upload path")
	}

	if !info.IsDir() && !archive.IsArchive(path) {
		return fmt.Errorf("%s is neither a directory nor a supported archive", path)
	}

	filename := filepath.Base(path)

	if info.IsDir() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		buf := &bytes.Buffer{}
		if err := archive.ProjectZip(afero.NewOsFs(), abs, buf); err != nil {
			return err
		}

		filename = filepath.Base(abs) + ".zip"
		return submitUpload(cmd, ops, filename, buf)
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening archive")
	}
	defer file.Close()

	return submitUpload(cmd, ops, filename, file)
}

func submitUpload(cmd *cobra.Command, ops *repoOpts, filename string, body io.Reader) error {
	created, err := ops.client.UploadProject(filename, body)
	if err != nil {
		return err
	}

	cmd.Printf("Uploaded %s for analysis.\n", filename)
	cmd.Printf("ID:     %s\n", created.ID)
	cmd.Printf("Status: %s\n", created.Status)

	return nil
}
