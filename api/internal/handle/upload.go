package handle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"image-extractor/api/internal/ocr"
	"image-extractor/api/internal/util"
)

const fieldImage = "image"

// Upload accepts one image in the multipart field "image", sends it to the
// model and returns the extracted fields as JSON.
func (h *Handle) Upload(c echo.Context) error {
	part, filename, err := h.imagePart(c)
	if err != nil {
		return err
	}
	log := h.log.With(zap.String("filename", filename))

	if !h.allowedFile(filename) {
		err := ErrInvalidFileType(filename)
		log.Error("invalid file type", zap.Error(err))
		return err
	}

	content, err := h.readLimited(part)
	if err != nil {
		log.Error("read upload", zap.Int64("limit", h.opts.MaxSize), zap.Error(err))
		return err
	}

	path, err := h.scratch.Save(filename, bytes.NewReader(content))
	if err != nil {
		log.Error("save scratch", zap.Error(err))
		return ErrUnexpected(err)
	}
	log.Info("scratch saved", zap.String("path", path))
	defer func() {
		if err := h.scratch.Remove(path); err != nil {
			log.Error("remove scratch", zap.String("path", path), zap.Error(err))
			return
		}
		log.Info("scratch removed", zap.String("path", path))
	}()

	data, err := h.extract(c.Request().Context(), path)
	if err != nil {
		var ue *UploadError
		if errors.As(err, &ue) && ue.Kind == KindResponseDecodeError {
			log.Error("decode model response", zap.Error(err))
			return ue
		}
		log.Error("extract fields", zap.Error(err))
		return ErrUnexpected(err)
	}

	log.Info("image processed", zap.String("engine", h.engine.Name()))
	return c.JSON(http.StatusOK, data)
}

// imagePart walks the multipart body up to the first "image" part that is a
// file, i.e. whose Content-Disposition has a filename parameter at all. Plain
// fields under the same name are skipped. The returned part is only valid
// until the reader is advanced, so it must be consumed right away.
func (h *Handle) imagePart(c echo.Context) (*multipart.Part, string, error) {
	mr, err := c.Request().MultipartReader()
	if err != nil {
		h.log.Error("no image part", zap.Error(err))
		return nil, "", ErrMissingField(err)
	}
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("no file in field %q", fieldImage)
		}
		if err != nil {
			h.log.Error("no image part", zap.Error(err))
			return nil, "", ErrMissingField(err)
		}
		if p.FormName() != fieldImage {
			continue
		}
		filename, ok := partFilename(p)
		if !ok {
			continue
		}
		if filename == "" {
			h.log.Error("no file selected", zap.String("filename", filename))
			return nil, "", ErrNoFileSelected()
		}
		return p, filename, nil
	}
}

// partFilename reports the raw filename parameter and whether it was sent.
// Part.FileName can't tell an absent parameter from filename="".
func partFilename(p *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]
	return name, ok
}

// allowedFile matches the text after the last '.' case-insensitively.
func (h *Handle) allowedFile(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	_, ok := h.allowed[strings.ToLower(filename[i+1:])]
	return ok
}

// readLimited reads at most MaxSize+1 bytes, so oversized uploads are
// rejected without buffering them whole.
func (h *Handle) readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, h.opts.MaxSize+1))
	if err != nil {
		return nil, ErrUnexpected(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(b)) > h.opts.MaxSize {
		return nil, ErrFileTooLarge(h.opts.MaxSize)
	}
	return b, nil
}

// extract runs the model over the saved scratch file and parses its answer.
func (h *Handle) extract(ctx context.Context, path string) (any, error) {
	img, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scratch file: %w", err)
	}
	mimeType, err := util.SniffImage(bytes.NewReader(img))
	if err != nil {
		return nil, err
	}

	if h.opts.ModelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.ModelTimeout)
		defer cancel()
	}

	text, err := h.engine.Extract(ctx, ocr.ExtractInput{
		Prompt: h.opts.Prompt,
		Image:  img,
		MIME:   mimeType,
	})
	if err != nil {
		return nil, err
	}

	data, err := util.DecodeJSON(util.TrimFences(text))
	if err != nil {
		return nil, ErrResponseDecode(err)
	}
	return data, nil
}
