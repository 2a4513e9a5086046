package port

import "context"

// PageImage is one rendered document page, ready to attach to a model call.
type PageImage struct {
	Data        []byte
	ContentType string
}

// PageRenderer converts document bytes into an ordered sequence of page
// images. An empty sequence (or an error) signals an unrecoverable rendering
// failure; the pipeline reports it without calling the model.
type PageRenderer interface {
	Render(ctx context.Context, fileBytes []byte, contentType string) ([]PageImage, error)
}
