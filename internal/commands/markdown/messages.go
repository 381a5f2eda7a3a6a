package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const importDirectoryMessageType = "markdown.import_directory"

// ImportDirectoryCommand loads every markdown file under Directory into the
// feed store, keyed by alias so re-runs update instead of duplicating.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path to load markdown files from.
	Directory string `json:"directory"`
	// AuthorID is recorded on feeds created during the import.
	AuthorID uuid.UUID `json:"author_id"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory and author are present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&cmd.AuthorID, validation.By(func(value any) error {
			id, ok := value.(uuid.UUID)
			if !ok || id == uuid.Nil {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
	)
}
