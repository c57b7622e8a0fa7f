package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"cdntk/cmd"
)

const docsDir = "./docs"

func main() {
	if err := os.RemoveAll(docsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to clean docs directory")
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("failed to create docs directory")
	}

	// ルートコマンドはdocs/README.mdとして生成
	if err := writeMarkdown([]*cobra.Command{cmd.RootCmd}, filepath.Join(docsDir, "README.md")); err != nil {
		log.Fatal().Err(err).Msg("failed to generate root documentation")
	}

	// サブコマンドごとに、子コマンドも含めて1ファイルにまとめる
	count := 1
	for _, sub := range cmd.RootCmd.Commands() {
		if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
			continue
		}
		commands := []*cobra.Command{sub}
		for _, child := range sub.Commands() {
			if child.IsAvailableCommand() {
				commands = append(commands, child)
			}
		}
		if err := writeMarkdown(commands, filepath.Join(docsDir, sub.Name()+".md")); err != nil {
			log.Error().Err(err).Str("command", sub.Name()).Msg("failed to generate documentation")
			continue
		}
		count++
	}

	fmt.Printf("✅ Documentation generated in %s (%d files)\n", docsDir, count)
}

// linkHandler は cdntk_config_show を config.md#cdntk-config-show の形にする
func linkHandler(name string) string {
	base := strings.TrimSuffix(name, ".md")
	if base == cmd.AppName {
		return "README.md"
	}
	parts := strings.Split(base, "_")
	if len(parts) > 2 {
		return parts[1] + ".md#" + strings.ReplaceAll(base, "_", "-")
	}
	if len(parts) == 2 {
		return parts[1] + ".md"
	}
	return name
}

func writeMarkdown(commands []*cobra.Command, filename string) error {
	var content bytes.Buffer
	for i, c := range commands {
		if i > 0 {
			content.WriteString("\n---\n\n")
		}
		if err := doc.GenMarkdownCustom(c, &content, linkHandler); err != nil {
			return fmt.Errorf("failed to generate markdown for %s: %w", c.CommandPath(), err)
		}
	}
	return os.WriteFile(filename, content.Bytes(), 0644)
}
