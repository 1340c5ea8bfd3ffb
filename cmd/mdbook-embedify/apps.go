package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/mdbook-embedify/internal/assets"
	"github.com/alnah/mdbook-embedify/internal/config"
	"github.com/alnah/mdbook-embedify/internal/hints"
	"github.com/alnah/mdbook-embedify/internal/render"
)

// Listing styles, applied only on terminals.
var (
	appNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	originStyles = map[assets.Origin]lipgloss.Style{
		assets.OriginBook:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		assets.OriginUser:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		assets.OriginEmbedded: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// runApps lists available templates, or prints one template's source.
func runApps(args []string, env *Environment) error {
	flags, names, err := parseAppsFlags(args)
	if err != nil {
		return err
	}

	dir, err := appsTemplateDir(flags)
	if err != nil {
		return err
	}

	resolver, err := assets.NewAssetResolver(assets.ResolverOptions{
		BookDir:     dir,
		SkipUserDir: flags.noUserTemplates,
	})
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForTemplateDir(""))
	}

	infos, err := resolver.Templates()
	if err != nil {
		return err
	}

	if len(names) == 1 {
		return printTemplate(env.Stdout, resolver, infos, names[0])
	}

	printAppList(env.Stdout, infos, isTerminal(env.Stdout))
	return nil
}

// appsTemplateDir picks the book template directory: the flag as given, or
// the config file's template-dir relative to that file.
func appsTemplateDir(flags *appsFlags) (string, error) {
	if flags.templateDir != "" || flags.config == "" {
		return flags.templateDir, nil
	}

	store, err := config.LoadFile(flags.config)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return "", fmt.Errorf("%w%s", err, hints.ForConfigNotFound("."))
		}
		return "", err
	}
	cfg, err := config.FromStore(store)
	if err != nil {
		return "", err
	}

	if cfg.TemplateDir == "" || filepath.IsAbs(cfg.TemplateDir) {
		return cfg.TemplateDir, nil
	}
	return filepath.Join(filepath.Dir(flags.config), cfg.TemplateDir), nil
}

// printTemplate writes the source of the named template, then reports a
// parse error if the template would fail at render time.
func printTemplate(w io.Writer, resolver *assets.AssetResolver, infos []assets.TemplateInfo, name string) error {
	src, _, err := resolver.Resolve(name)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) {
			available := make([]string, len(infos))
			for i, info := range infos {
				available[i] = info.Name
			}
			return fmt.Errorf("%w%s", err, hints.ForUnknownApp(available))
		}
		return err
	}
	if _, err := io.WriteString(w, src); err != nil {
		return err
	}
	return render.NewTemplateRenderer(resolver).Check(name)
}

// printAppList writes one line per template with the layer that provides it.
func printAppList(w io.Writer, infos []assets.TemplateInfo, styled bool) {
	width := len("APP")
	for _, info := range infos {
		width = max(width, len(info.Name))
	}

	header := fmt.Sprintf("%-*s  %s", width, "APP", "ORIGIN")
	if styled {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	for _, info := range infos {
		name := fmt.Sprintf("%-*s", width, info.Name)
		origin := string(info.Origin)
		if styled {
			name = appNameStyle.Render(name)
			origin = originStyles[info.Origin].Render(origin)
		}
		fmt.Fprintln(w, strings.TrimRight(name+"  "+origin, " "))
	}
}
