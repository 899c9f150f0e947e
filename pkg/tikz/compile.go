package tikz

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"

	errs "github.com/matzehuels/tikzlayout/pkg/errors"
)

// DefaultEngine is the LaTeX binary used when none is configured.
const DefaultEngine = "pdflatex"

// CompileOptions configures [CompilePDF].
type CompileOptions struct {
	// Engine is the LaTeX binary; pdflatex if empty.
	Engine string
	// WorkDir resolves relative image paths when non-empty.
	WorkDir string
	// Restricted disables shell escape and limits TeX file access to the
	// working directory and below. Set it for documents from untrusted
	// sources: text and style tokens reach the engine unchanged.
	Restricted bool
}

// restrictedEnv makes kpathsea refuse absolute paths outside the build
// directory and parent references for both reading and writing.
func restrictedEnv(buildDir string) []string {
	return []string{"openin_any=p", "openout_any=p", "TEXMFOUTPUT=" + buildDir}
}

// CompilePDF compiles a standalone TeX document to PDF. The document is
// compiled in a temporary directory.
//
// Requires a TeX distribution: brew install --cask mactex (macOS),
// apt install texlive-latex-extra (Linux).
func CompilePDF(ctx context.Context, tex []byte, opts CompileOptions) ([]byte, error) {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	if _, err := exec.LookPath(engine); err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err,
			"PDF output requires %s. Install a TeX distribution:\n  macOS:  brew install --cask mactex\n  Linux:  apt install texlive-latex-extra", engine).WithOp("compile")
	}

	dir, err := os.MkdirTemp("", "tikzlayout-*")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create build directory").WithOp("compile")
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "figure.tex")
	if err := os.WriteFile(src, tex, 0o644); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "write source").WithOp("compile")
	}

	cmd := exec.CommandContext(ctx, engine, compileArgs(dir, src, opts.Restricted)...)
	cmd.Dir = dir
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	if opts.Restricted {
		cmd.Env = append(os.Environ(), restrictedEnv(dir)...)
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "%s: %s", engine, lastLines(out.String(), 20)).WithOp("compile")
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "figure.pdf"))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeRenderFailed, err, "%s produced no output", engine).WithOp("compile")
	}
	return pdf, nil
}

func compileArgs(dir, src string, restricted bool) []string {
	args := []string{"-interaction=nonstopmode", "-halt-on-error"}
	if restricted {
		args = append(args, "-no-shell-escape")
	}
	return append(args, "-output-directory", dir, src)
}

func lastLines(s string, n int) string {
	lines := bytes.Split(bytes.TrimSpace([]byte(s)), []byte("\n"))
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return string(bytes.Join(lines, []byte("\n")))
}
