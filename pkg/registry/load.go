package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chkup/spec-tools/pkg/sel/ast"
	selerrors "github.com/chkup/spec-tools/pkg/sel/errors"
)

// schemaFile is the intermediate structure of a schema definition file.
type schemaFile struct {
	Schemas map[string]any `yaml:"schemas"`
}

// LoadBytes parses schema definitions from YAML bytes and registers
// them into reg. Bad entries are accumulated and reported together;
// good entries in the same document are still registered. The source
// path annotates errors only.
func LoadBytes(reg Registry, data []byte, source string) error {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return selerrors.Decode(source, "invalid YAML: %v", err)
	}

	el := selerrors.NewErrorList()

	// Map iteration order is random; register in sorted name order so
	// error reports are deterministic.
	names := make([]string, 0, len(file.Schemas))
	for name := range file.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		qname := parseEntryName(name)
		if qname.Local == "" {
			el.Add(selerrors.Decode(source, "entry %q: empty schema name", name))
			continue
		}

		def, err := DecodeExpr(file.Schemas[name])
		if err != nil {
			el.Add(annotate(err, source, name))
			continue
		}

		if err := reg.Register(qname, def); err != nil {
			el.Add(selerrors.Decode(source, "entry %q: %v", name, err))
		}
	}

	if el.HasErrors() {
		return el
	}
	return nil
}

// LoadFile loads one schema definition file into reg.
func LoadFile(reg Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file %q: %w", path, err)
	}
	return LoadBytes(reg, data, path)
}

// LoadDir loads every .yaml/.yml file under dir into reg, in sorted
// path order. Hidden files and directories are skipped. Errors from
// all files are accumulated; loading continues past a bad file.
func LoadDir(reg Registry, dir string) error {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan schema directory %q: %w", dir, err)
	}
	sort.Strings(files)

	el := selerrors.NewErrorList()
	for _, path := range files {
		switch loadErr := LoadFile(reg, path).(type) {
		case nil:
		case *selerrors.ErrorList:
			el.Errors = append(el.Errors, loadErr.Errors...)
		case *selerrors.Error:
			el.Add(loadErr)
		default:
			el.Add(selerrors.Decode(path, "%v", loadErr))
		}
	}

	if el.HasErrors() {
		return el
	}
	return nil
}

// parseEntryName reads a definition-file entry name, tolerating an
// optional leading ":" so entries match the reference spelling used
// inside expressions.
func parseEntryName(name string) ast.QName {
	return ast.ParseQName(strings.TrimPrefix(name, ":"))
}

// annotate attaches the file source and entry name to a decode error.
func annotate(err error, source, entry string) *selerrors.Error {
	if selErr, ok := err.(*selerrors.Error); ok {
		out := *selErr
		out.Source = source
		out.Message = fmt.Sprintf("entry %q: %s", entry, selErr.Message)
		return &out
	}
	return selerrors.Decode(source, "entry %q: %v", entry, err)
}
