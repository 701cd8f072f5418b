package dom

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Image is the result of loading an img element's source.
type Image struct {
	Src  string
	MIME string
	Data []byte
}

// ImageLoader fetches raw image bytes for a source reference.
type ImageLoader interface {
	Load(ctx context.Context, src string) ([]byte, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, src string) ([]byte, error)

func (f ImageLoaderFunc) Load(ctx context.Context, src string) ([]byte, error) {
	return f(ctx, src)
}

// FileImageLoader reads images from disk. Relative sources are resolved
// against Root.
type FileImageLoader struct {
	Root string
}

func (l FileImageLoader) Load(ctx context.Context, src string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(src, "file://")
	if !filepath.IsAbs(path) && l.Root != "" {
		path = filepath.Join(l.Root, path)
	}
	return os.ReadFile(path)
}

// ImageLoaders picks a loading strategy from the shape of the source.
type ImageLoaders struct {
	File    ImageLoader
	Network ImageLoader
}

// Select returns the network loader for http, https and data sources and the
// file loader for everything else.
func (ls ImageLoaders) Select(src string) (ImageLoader, error) {
	lower := strings.ToLower(src)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:") {
		if ls.Network == nil {
			return nil, ErrNotSupported(fmt.Sprintf("no network loader for %q", src))
		}
		return ls.Network, nil
	}
	if ls.File == nil {
		return nil, ErrNotSupported(fmt.Sprintf("no file loader for %q", src))
	}
	return ls.File, nil
}

// CreateImage creates a self-closing inline img element.
func (d *Document) CreateImage(src, alt string) *Node {
	img := d.CreateElementWith("img", Inline, SelfClosing)
	img.attributes.set("src", src)
	if alt != "" {
		img.attributes.set("alt", alt)
	}
	return img
}

// LoadImage loads the element's src with the strategy chosen by loaders,
// checks that the bytes are an image and keeps the result on the node.
func (n *Node) LoadImage(ctx context.Context, loaders ImageLoaders) (*Image, error) {
	if n.TagName() != "img" {
		return nil, ErrNotSupported("LoadImage requires an img element.")
	}
	src := n.GetAttribute("src")
	if src == "" {
		return nil, errors.New("img element has no src attribute")
	}
	loader, err := loaders.Select(src)
	if err != nil {
		return nil, err
	}
	data, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("unable to load image %q: %w", src, err)
	}
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%q is not a recognized image", src)
	}
	n.image = &Image{Src: src, MIME: kind.MIME.Value, Data: data}
	return n.image, nil
}

// Image returns the image loaded by LoadImage, or nil.
func (n *Node) Image() *Image {
	return n.image
}
