package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/dataclass/gen"
	"github.com/dhamidi/dataclass/java"
)

var log = commonlog.GetLogger("dataclass")

const (
	beginMarker = "// generated by dataclass - do not edit"
	endMarker   = "// end of generated code"
)

func newGenerateCmd() *cobra.Command {
	var options []string
	var all, print bool

	cmd := &cobra.Command{
		Use:   "generate [path...]",
		Short: "Generate members for annotated classes and rewrite the files",
		Long: `Generate members for every @DataClass-annotated class found in the
given files or directories (default: the current directory).

Generated code is inserted at the end of the class body between marker
comments; an existing marked region is replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadConfig()
			switches := append(viper.GetStringSlice("options"), options...)
			if all {
				switches = append(switches, "all")
			}
			files, err := collectJavaFiles(args, viper.GetStringSlice("exclude"))
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range files {
				if err := processFile(path, switches, print); err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "%s\n", err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&options, "option", "o", nil,
		"generator switch (e.g. builder, no-setters, hidden-builder, protected-setters)")
	cmd.Flags().BoolVar(&all, "all", false, "enable every feature")
	cmd.Flags().BoolVar(&print, "print", false, "write rewritten source to stdout instead of the file")

	return cmd
}

func loadConfig() {
	viper.SetConfigName(".dataclass")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("dataclass")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Infof("using config file %s", viper.ConfigFileUsed())
	}
}

func collectJavaFiles(args, exclude []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	globs := make([]glob.Glob, 0, len(exclude))
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	excluded := func(path string) bool {
		for _, g := range globs {
			if g.Match(path) || g.Match(filepath.Base(path)) {
				return true
			}
		}
		return false
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if excluded(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".java") && !excluded(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func processFile(path string, switches []string, print bool) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	source := original
	file, err := java.Parse(source)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	changed := false
	// classes are processed back to front so body offsets stay valid
	for i := len(file.Classes) - 1; i >= 0; i-- {
		class := file.Classes[i]
		if class.Annotation(gen.AnnotationName) == nil {
			continue
		}
		core, err := gen.NewCore(file, class, switches)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", path, class.Name, err)
		}
		text := core.Generate()
		if text == "" {
			continue
		}
		source = insertGenerated(source, class, text)
		changed = true
		log.Infof("generated members for %s in %s", class.Name, path)
	}

	if !changed {
		return nil
	}
	if print {
		_, err = os.Stdout.Write(source)
		return err
	}
	// rewriting identical content would retrigger watch mode
	if bytes.Equal(source, original) {
		return nil
	}
	return os.WriteFile(path, source, 0644)
}

// insertGenerated splices the generated text into the class body, replacing
// a previously generated region when its markers are present.
func insertGenerated(source []byte, class *java.ClassModel, text string) []byte {
	block := indentBlock(beginMarker+"\n"+text+endMarker+"\n", "    ")
	body := source[class.BodyStart:class.BodyEnd]

	if begin := bytes.Index(body, []byte(beginMarker)); begin >= 0 {
		if end := bytes.Index(body, []byte(endMarker)); end > begin {
			start := int(class.BodyStart) + lineStart(body, begin)
			stop := int(class.BodyStart) + lineEnd(body, end)
			return splice(source, start, stop, []byte(block))
		}
	}

	insertAt := int(class.BodyEnd)
	for insertAt > 0 && (source[insertAt-1] == ' ' || source[insertAt-1] == '\t') {
		insertAt--
	}
	return splice(source, insertAt, insertAt, []byte(block))
}

func splice(source []byte, start, stop int, insert []byte) []byte {
	out := make([]byte, 0, len(source)-(stop-start)+len(insert))
	out = append(out, source[:start]...)
	out = append(out, insert...)
	out = append(out, source[stop:]...)
	return out
}

func lineStart(body []byte, offset int) int {
	if i := bytes.LastIndexByte(body[:offset], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

func lineEnd(body []byte, offset int) int {
	if i := bytes.IndexByte(body[offset:], '\n'); i >= 0 {
		return offset + i + 1
	}
	return len(body)
}

func indentBlock(text, unit string) string {
	lines := strings.Split(text, "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			break
		}
		if line != "" {
			sb.WriteString(unit)
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
