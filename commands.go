package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/lightdom/book"
	"github.com/chrisuehlinger/lightdom/dom"
	"github.com/chrisuehlinger/lightdom/html"
	"github.com/chrisuehlinger/lightdom/script"
	"github.com/chrisuehlinger/lightdom/state"
)

// readSource returns the text behind a file path, an http(s) URL or "-".
func readSource(ctx context.Context, env *state.LocalEnv, src string) (string, error) {
	switch {
	case src == "":
		return "", errors.New("no SOURCE specified")
	case src == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("unable to read STDIN: %w", err)
		}
		return string(data), nil
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		loader, err := env.Loader()
		if err != nil {
			return "", err
		}
		return loader.FetchText(ctx, src)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return "", fmt.Errorf("unable to read source: %w", err)
		}
		return string(data), nil
	}
}

// commandOutput is where results go when no destination file is given. It
// is stdout unless the application was given another writer; logging never
// shares it.
func commandOutput(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// writeOutput writes data to the file fname, or to w when fname is empty.
func writeOutput(w io.Writer, fname string, data []byte) (err error) {
	out := w
	if len(fname) > 0 {
		var f *os.File
		if f, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
	}
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

// loadTree parses SOURCE into top-level nodes.
func loadTree(ctx context.Context, cmd *cli.Command, doc *dom.Document, opts ...html.Option) ([]*dom.Node, error) {
	env := state.EnvFromContext(ctx)
	src := cmd.Args().First()
	markup, err := readSource(ctx, env, src)
	if err != nil {
		return nil, err
	}
	if env.Cfg.Render.KeepWhitespace {
		opts = append(opts, html.KeepWhitespace())
	}
	if cmd.Bool("document") {
		root, err := html.ParseDocument(doc, strings.NewReader(markup), opts...)
		if err != nil {
			return nil, err
		}
		return []*dom.Node{root}, nil
	}
	nodes, err := html.Parse(doc, markup, opts...)
	if err != nil {
		return nil, err
	}
	env.Log.Debug("Parsed source", zap.String("source", src), zap.Int("nodes", len(nodes)), zap.Int("types", doc.Types().Len()))
	return nodes, nil
}

func parseVisibility(s string) (dom.Visibility, error) {
	for _, v := range []dom.Visibility{dom.Visible, dom.Hidden, dom.Collapsed} {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return dom.Visible, fmt.Errorf("unknown visibility state %q", s)
}

// check runs the validator and accessibility checker and logs what they find.
func check(log *zap.Logger, nodes []*dom.Node) error {
	var errs error
	for _, n := range nodes {
		validator := &dom.Validator{}
		a11y := &dom.AccessibilityChecker{}
		n.Accept(validator)
		n.Accept(a11y)
		errs = multierr.Append(errs, validator.Err())
		for _, w := range a11y.Warnings {
			log.Warn("Accessibility", zap.String("issue", w))
		}
	}
	return errs
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	cfg := env.Cfg.Render

	visibility, err := parseVisibility(cmd.String("state"))
	if err != nil {
		return err
	}

	doc := dom.NewDocument(dom.WithLogger(env.Log))
	var (
		opts []html.Option
		rt   *script.Runtime
	)
	if cfg.Scripts || cmd.Bool("scripts") {
		rt = script.NewRuntime(env.Log)
		opts = append(opts, html.WithHandlerBinder(rt))
	}
	nodes, err := loadTree(ctx, cmd, doc, opts...)
	if err != nil {
		return err
	}

	if cfg.Validate {
		if err := check(env.Log, nodes); err != nil {
			env.Log.Warn("Validation problems", zap.Error(err))
		}
	}

	for _, trigger := range cmd.StringSlice("trigger") {
		event, data, _ := strings.Cut(trigger, "=")
		fired := 0
		for _, n := range nodes {
			for el := range dom.Traverse(n, dom.DepthFirst) {
				if el.HasEventListeners(event) {
					fired += el.Trigger(event, data)
				}
			}
		}
		env.Log.Debug("Triggered event", zap.String("event", event), zap.Int("handlers", fired))
	}
	if rt != nil {
		if errs := rt.Errors(); len(errs) > 0 {
			env.Log.Warn("Script errors", zap.Errors("errors", errs))
		}
	}

	if cmd.Bool("images") {
		loadImages(ctx, env, cmd.Args().First(), nodes)
	}

	indent := cfg.Indent
	if i := cmd.Int("indent"); i >= 0 {
		indent = i
	}
	compact := cfg.Compact || cmd.Bool("compact")

	var sb strings.Builder
	for _, n := range nodes {
		var out string
		switch {
		case compact:
			out = n.OuterHTML()
		default:
			n.SetVisibility(visibility)
			out = n.RenderWithState(indent)
		}
		if out == "" {
			continue
		}
		sb.WriteString(out)
		sb.WriteByte('\n')
	}
	return writeOutput(commandOutput(cmd), "", []byte(sb.String()))
}

func loadImages(ctx context.Context, env *state.LocalEnv, src string, nodes []*dom.Node) {
	loaders := dom.ImageLoaders{File: dom.FileImageLoader{}}
	if src != "-" && !strings.Contains(src, "://") {
		loaders.File = dom.FileImageLoader{Root: filepath.Dir(src)}
	}
	if loader, err := env.Loader(); err == nil {
		if strings.Contains(src, "://") {
			loader.SetBaseURL(src)
		}
		loaders.Network = loader
	}

	for _, n := range nodes {
		for el := range dom.Traverse(n, dom.DepthFirst) {
			if el.TagName() != "img" {
				continue
			}
			img, err := el.LoadImage(ctx, loaders)
			if err != nil {
				env.Log.Warn("Unable to load image", zap.String("src", el.GetAttribute("src")), zap.Error(err))
				continue
			}
			env.Log.Info("Loaded image", zap.String("src", img.Src), zap.String("type", img.MIME), zap.Int("bytes", len(img.Data)))
		}
	}
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	doc := dom.NewDocument(dom.WithLogger(env.Log))
	nodes, err := loadTree(ctx, cmd, doc)
	if err != nil {
		return err
	}

	var (
		metrics dom.MetricsCollector
		styles  dom.StyleCollector
		a11y    dom.AccessibilityChecker
		valid   dom.Validator
	)
	for _, n := range nodes {
		for _, v := range []dom.Visitor{&metrics, &styles, &a11y, &valid} {
			n.Accept(v)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "elements: %d\ntext nodes: %d\nmax depth: %d\nelement types: %d\n",
		metrics.Elements, metrics.TextNodes, metrics.MaxDepth, doc.Types().Len())
	sb.WriteString("classes:\n")
	for _, class := range styles.Classes() {
		fmt.Fprintf(&sb, "  %s: %d\n", class, styles.Usage[class])
	}
	sb.WriteString("accessibility:\n")
	for _, w := range a11y.Warnings {
		fmt.Fprintf(&sb, "  %s\n", w)
	}
	sb.WriteString("validation:\n")
	for _, e := range valid.Errors {
		fmt.Fprintf(&sb, "  %s\n", e)
	}
	return writeOutput(commandOutput(cmd), "", []byte(sb.String()))
}

func runWalk(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	var order dom.TraversalType
	switch cmd.String("order") {
	case dom.DepthFirst.String():
		order = dom.DepthFirst
	case dom.BreadthFirst.String():
		order = dom.BreadthFirst
	default:
		return fmt.Errorf("unknown traversal order %q", cmd.String("order"))
	}

	nodes, err := loadTree(ctx, cmd, dom.NewDocument(dom.WithLogger(env.Log)))
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, n := range nodes {
		it := n.Iterator(order)
		for it.HasNext() {
			node, err := it.Next()
			if err != nil {
				return err
			}
			if node.IsText() {
				fmt.Fprintf(&sb, "#text %q\n", node.Data())
				continue
			}
			fmt.Fprintf(&sb, "%s %d\n", node.TagName(), node.ChildCount())
		}
	}
	return writeOutput(commandOutput(cmd), "", []byte(sb.String()))
}

func runBook(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	cfg := env.Cfg.Book

	text, err := readSource(ctx, env, cmd.Args().First())
	if err != nil {
		return err
	}

	opts := book.Options{
		ShortLine:      cfg.ShortLine,
		ContainerClass: cfg.ContainerClass,
		HeadingIDs:     cfg.HeadingIDs,
	}
	if n := cmd.Int("short-line"); n > 0 {
		opts.ShortLine = n
	}

	lines := book.SplitLines(text)
	if cfg.Gutenberg {
		lines = book.ExtractBody(lines)
	}
	doc := dom.NewDocument()
	root, err := book.Convert(doc, lines, opts)
	if err != nil {
		return err
	}

	title := cmd.String("title")
	if title == "" && root.FirstChild() != nil {
		title = root.FirstChild().TextContent()
	}

	if cmd.Bool("stats") {
		stats := book.Measure(root)
		env.Log.Info("Element type sharing",
			zap.Int("lines", len(lines)),
			zap.Int("elements", stats.Elements),
			zap.Int("types", stats.DistinctTypes),
			zap.Int("per-node bytes", stats.PerNodeBytes),
			zap.Int("shared bytes", stats.SharedBytes),
			zap.String("reduction", fmt.Sprintf("%.2f%%", stats.Reduction()*100)))
	}

	var sb strings.Builder
	if err := book.WritePage(&sb, title, root); err != nil {
		return err
	}
	return writeOutput(commandOutput(cmd), cmd.Args().Get(1), []byte(sb.String()))
}
