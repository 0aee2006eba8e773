package contentcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-page-content/internal/commands"
	"github.com/goliatone/go-page-content/internal/content"
	"github.com/goliatone/go-page-content/pkg/interfaces"
)

const clearPageMessageType = "pagecontent.content.clear_page"

// ClearPageCommand removes every stored element for a page, across locales.
type ClearPageCommand struct {
	PageID string `json:"page_id"`
}

// Type implements command.Message.
func (ClearPageCommand) Type() string { return clearPageMessageType }

// Validate ensures the message names a valid page.
func (m ClearPageCommand) Validate() error {
	errs := validation.Errors{}
	if err := content.ValidatePageID(m.PageID); err != nil {
		errs["page_id"] = validation.NewError("pagecontent.content.clear_page.page_id_invalid", err.Error())
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClearPageHandler clears page content via the content service.
type ClearPageHandler struct {
	inner *commands.Handler[ClearPageCommand]
}

// NewClearPageHandler constructs a handler wired to the provided content service.
func NewClearPageHandler(service content.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ClearPageCommand]) *ClearPageHandler {
	exec := func(ctx context.Context, msg ClearPageCommand) error {
		_, err := service.DeletePage(ctx, msg.PageID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ClearPageCommand]{
		commands.WithLogger[ClearPageCommand](logger),
		commands.WithOperation[ClearPageCommand]("content.clear_page"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ClearPageHandler{
		inner: commands.NewHandler[ClearPageCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ClearPageCommand].Execute.
func (h *ClearPageHandler) Execute(ctx context.Context, msg ClearPageCommand) error {
	return h.inner.Execute(ctx, msg)
}
