package feedscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	publishFeedMessageType   = "feeds.publish"
	unpublishFeedMessageType = "feeds.unpublish"
)

// PublishFeedCommand flips a draft feed to published.
type PublishFeedCommand struct {
	FeedID uuid.UUID `json:"feed_id"`
}

// Type implements command.Message.
func (PublishFeedCommand) Type() string { return publishFeedMessageType }

// Validate ensures the target feed is identified before handlers execute.
func (cmd PublishFeedCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.FeedID, validation.Required, validation.By(requireUUID)),
	)
}

// UnpublishFeedCommand reverts a feed back to draft.
type UnpublishFeedCommand struct {
	FeedID uuid.UUID `json:"feed_id"`
}

// Type implements command.Message.
func (UnpublishFeedCommand) Type() string { return unpublishFeedMessageType }

func (cmd UnpublishFeedCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.FeedID, validation.Required, validation.By(requireUUID)),
	)
}

func requireUUID(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
