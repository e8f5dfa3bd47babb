package tui

import (
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/filemanifest/internal/config"
)

// placeholders shows, per form key, the value used when a field is left empty
func placeholders() map[string]string {
	return map[string]string{
		"max_depth":  strconv.Itoa(config.DefaultMaxDepth),
		"root_label": config.DefaultRootLabel,
		"indent":     strconv.Itoa(config.DefaultIndent),
		"debounce":   config.DefaultDebounce.String(),
		"workers":    strconv.Itoa(config.DefaultBatchWorkers),
	}
}

func CreateScanForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("max_depth").
				Title("Max Depth").
				Description("Deepest directory level scanned; the root is depth 0 (1-64)").
				Value(&values.MaxDepth).
				Placeholder(placeholders()["max_depth"]).
				Validate(ValidateIntRange(1, 64)),

			huh.NewInput().
				Key("root_label").
				Title("Root Label").
				Description("Name given to the root folder in the manifest").
				Value(&values.RootLabel).
				Placeholder(placeholders()["root_label"]).
				Validate(ValidateRequired),

			huh.NewConfirm().
				Key("follow_symlinks").
				Title("Follow Symlinks").
				Description("Descend into symbolic links to directories").
				Value(&values.FollowSymlinks),
		),
	)
}

func CreateFiltersForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("exclude").
				Title("Exclude Patterns").
				Description("One per line; any path containing the text is skipped").
				Value(&values.ExcludePatterns).
				Lines(6),

			huh.NewText().
				Key("extensions").
				Title("File Types").
				Description("One suffix per line, e.g. .md (case-sensitive)").
				Value(&values.Extensions).
				Lines(8).
				Validate(ValidateSuffixes),
		),
	)
}

func CreateOutputForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output File").
				Description("Where to write the manifest (empty or - for stdout)").
				Value(&values.OutputPath).
				Placeholder("./site/file_manifest.json"),

			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("JSON", "json"),
					huh.NewOption("YAML", "yaml"),
				).
				Value(&values.OutputFormat),

			huh.NewInput().
				Key("indent").
				Title("Indent").
				Description("Spaces per indentation level (0-8)").
				Value(&values.Indent).
				Placeholder(placeholders()["indent"]).
				Validate(ValidateIntRange(0, 8)),

			huh.NewConfirm().
				Key("gzip").
				Title("Gzip").
				Description("Compress the manifest (also implied by a .gz file name)").
				Value(&values.Gzip),
		),
	)
}

func CreateWatchForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("debounce").
				Title("Debounce").
				Description("Quiet period after the last change before regenerating").
				Value(&values.Debounce).
				Placeholder(placeholders()["debounce"]).
				Validate(ValidateDuration),
		),
	)
}

func CreateBatchForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("workers").
				Title("Workers").
				Description("Targets generated concurrently (1-32)").
				Value(&values.BatchWorkers).
				Placeholder(placeholders()["workers"]).
				Validate(ValidateIntRange(1, 32)),
		),
	)
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	)
}

// GetFormForCategory returns the themed form editing a category, or nil
func GetFormForCategory(category string, values *ConfigValues, accessible bool) *huh.Form {
	var form *huh.Form
	switch category {
	case "scan":
		form = CreateScanForm(values)
	case "filters":
		form = CreateFiltersForm(values)
	case "output":
		form = CreateOutputForm(values)
	case "watch":
		form = CreateWatchForm(values)
	case "batch":
		form = CreateBatchForm(values)
	case "logging":
		form = CreateLoggingForm(values)
	default:
		return nil
	}
	return form.WithTheme(GetTheme(accessible)).WithAccessible(accessible)
}
