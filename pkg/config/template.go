package config

import "fmt"

// TemplateHeader is written at the top of generated config files.
const TemplateHeader = `# pytidy configuration
# Settings here can also live in pyproject.toml under [tool.pytidy].`

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, a commented minimal template is generated.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if !opts.Full {
		return []byte(minimalTemplate), nil
	}

	content, err := NewConfig().ToYAMLWithHeader(TemplateHeader)
	if err != nil {
		return nil, fmt.Errorf("generate full template: %w", err)
	}
	return content, nil
}

const minimalTemplate = TemplateHeader + `

# Skip the body-end check when a block body is a single one-line statement.
# ignore_single_line_body: false

# Python grammar version used for parsing (default: newest supported).
# python_version: "3.13"

# Glob patterns for files to skip.
# exclude:
#   - "build/**"
#   - "**/migrations/*.py"

# Exclude paths matched by ./.gitignore when discovering files.
# respect_gitignore: true

# Also check extension-less scripts with a python shebang.
# detect_shebang: false

# Report parse failures and keep processing remaining files.
# keep_going: false

# Backups written before formatting.
# backups:
#   enabled: false
#   mode: sidecar
`
