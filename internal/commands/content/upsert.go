package contentcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-page-content/internal/commands"
	"github.com/goliatone/go-page-content/internal/content"
	"github.com/goliatone/go-page-content/pkg/interfaces"
)

const upsertContentMessageType = "pagecontent.content.upsert"

// UpsertContentCommand writes one content element, creating or replacing
// the row for its (page, element, locale) triple.
type UpsertContentCommand struct {
	PageID      string  `json:"page_id"`
	ElementID   string  `json:"element_id"`
	Locale      string  `json:"locale"`
	ContentType string  `json:"type,omitempty"`
	Value       *string `json:"value,omitempty"`
}

// Type implements command.Message.
func (UpsertContentCommand) Type() string { return upsertContentMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m UpsertContentCommand) Validate() error {
	errs := validation.Errors{}
	if err := content.ValidatePageID(m.PageID); err != nil {
		errs["page_id"] = validation.NewError("pagecontent.content.upsert.page_id_invalid", err.Error())
	}
	if m.ElementID == "" {
		errs["element_id"] = validation.NewError("pagecontent.content.upsert.element_id_required", "element_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpsertContentHandler writes entries via the content service using the
// shared command handler foundation.
type UpsertContentHandler struct {
	inner *commands.Handler[UpsertContentCommand]
}

// NewUpsertContentHandler constructs a handler wired to the provided content service.
func NewUpsertContentHandler(service content.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpsertContentCommand]) *UpsertContentHandler {
	exec := func(ctx context.Context, msg UpsertContentCommand) error {
		_, err := service.Upsert(ctx, content.UpsertRequest{
			PageID:    msg.PageID,
			ElementID: msg.ElementID,
			Locale:    msg.Locale,
			Type:      msg.ContentType,
			Value:     msg.Value,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpsertContentCommand]{
		commands.WithLogger[UpsertContentCommand](logger),
		commands.WithOperation[UpsertContentCommand]("content.upsert"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpsertContentHandler{
		inner: commands.NewHandler[UpsertContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpsertContentCommand].Execute.
func (h *UpsertContentHandler) Execute(ctx context.Context, msg UpsertContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
