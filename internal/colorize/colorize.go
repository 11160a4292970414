// Package colorize highlights disassembly text for terminal output.
package colorize

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/term"
)

// DisableEnv is the environment variable that turns colour output off when set.
const DisableEnv = "ROBUSTONE_NO_COLOR"

// Mode values accepted by Enabled.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// ListingStyle colours mnemonics, registers and numbers of a listing.
var ListingStyle = styles.Register(chroma.MustNewStyle("robustone-dark", chroma.StyleEntries{
	chroma.Text:          "#FFFFFF",
	chroma.Keyword:       "#FFFFFF",
	chroma.KeywordPseudo: "#FFFFFF",
	chroma.NameFunction:  "#FFFFFF",
	chroma.NameAttribute: "#FFFFFF",
	chroma.Name:          "#7C9C9D",
	chroma.NameBuiltin:   "#7C9C9D",
	chroma.NameVariable:  "#7C9C9D",
	chroma.LiteralNumber: "#FF5F87",
	chroma.NameLabel:     "#FFD700",
	chroma.Operator:      "#FFFFFF",
	chroma.Punctuation:   "#FFFFFF",
	chroma.Comment:       "#6C6C6C",
}))

// Enabled reports whether output written to out should be coloured.
// In auto mode colours are used for terminals only.
func Enabled(mode string, out io.Writer) bool {
	if os.Getenv(DisableEnv) != "" {
		return false
	}

	switch strings.ToLower(mode) {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}

	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(file.Fd())
}

// Assembly highlights assembly text using the GNU assembler lexer. The text
// is returned unchanged if no lexer is available.
func Assembly(code string) (string, error) {
	lexer := assemblyLexer()
	if lexer == nil {
		return code, nil
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code, err
	}

	var buf strings.Builder
	if err := terminalFormatter().Format(&buf, ListingStyle, iterator); err != nil {
		return code, err
	}
	return buf.String(), nil
}

func assemblyLexer() chroma.Lexer {
	for _, name := range []string{"gas", "GAS", "nasm"} {
		if lexer := lexers.Get(name); lexer != nil {
			return chroma.Coalesce(lexer)
		}
	}
	return nil
}

func terminalFormatter() chroma.Formatter {
	for _, name := range []string{"terminal256", "terminal16"} {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}
