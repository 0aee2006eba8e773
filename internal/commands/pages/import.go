package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-page-content/internal/commands"
	"github.com/goliatone/go-page-content/internal/logging"
	"github.com/goliatone/go-page-content/internal/pages"
	"github.com/goliatone/go-page-content/pkg/interfaces"
)

const importPagesMessageType = "pagecontent.pages.import"

// ImportPagesCommand restores a batch of pages from a backup payload,
// upserting each one by name.
type ImportPagesCommand struct {
	Pages []pages.ImportPage `json:"pages"`
}

// Type implements command.Message.
func (ImportPagesCommand) Type() string { return importPagesMessageType }

// Validate ensures the payload carries at least one page.
func (m ImportPagesCommand) Validate() error {
	errs := validation.Errors{}
	if len(m.Pages) == 0 {
		errs["pages"] = validation.NewError("pagecontent.pages.import.pages_required", "at least one page is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportPagesHandler restores pages via the page service.
type ImportPagesHandler struct {
	inner *commands.Handler[ImportPagesCommand]
}

// NewImportPagesHandler constructs a handler wired to the provided page service.
func NewImportPagesHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportPagesCommand]) *ImportPagesHandler {
	log := logger
	if log == nil {
		log = logging.NoOp()
	}
	exec := func(ctx context.Context, msg ImportPagesCommand) error {
		result, err := service.Import(ctx, pages.ImportRequest{Pages: msg.Pages})
		if err != nil {
			return err
		}
		if len(result.Errors) > 0 {
			log.Warn("pages import finished with errors", "imported", result.Imported, "errors", result.Errors)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportPagesCommand]{
		commands.WithLogger[ImportPagesCommand](logger),
		commands.WithOperation[ImportPagesCommand]("pages.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportPagesHandler{
		inner: commands.NewHandler[ImportPagesCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportPagesCommand].Execute.
func (h *ImportPagesHandler) Execute(ctx context.Context, msg ImportPagesCommand) error {
	return h.inner.Execute(ctx, msg)
}
