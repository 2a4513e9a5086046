package port

import "context"

// ModelCaller abstracts the vision-language model. It sends a prompt plus
// page images and returns the raw completion text, which may still be wrapped
// in code-fence markers.
type ModelCaller interface {
	Complete(ctx context.Context, images []PageImage, prompt string) (string, error)
}
