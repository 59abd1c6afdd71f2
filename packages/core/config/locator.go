package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// BaseConfigFile returns the base config path for selector under cwd.
//
// Without a selector it is cwd/config.json, and ok is false when that file
// does not exist. With a selector it is cwd/<project>.json, returned without
// checking the disk; a later read fails if it is absent.
func (r *Resolver) BaseConfigFile(cwd, selector string) (path string, ok bool) {
	sel := ParseSelector(selector)

	if sel.IsZero() {
		path = filepath.Join(cwd, DefaultConfigFilename)
		if !r.store.Exists(path) {
			r.logger.Debug("default base config not found", "path", path)
			return "", false
		}
		r.logger.Debug("using default base config", "path", path)
		return path, true
	}

	path = filepath.Join(cwd, sel.Project+ConfigExt)
	r.logger.Debug("using project base config", "project", sel.Project, "page", sel.Page, "path", path)
	return path, true
}

// TestFolder returns the test_folder named by the base config at path,
// falling back to the resolver's default.
func (r *Resolver) TestFolder(baseConfigPath string) (string, error) {
	data, err := r.store.ReadFile(baseConfigPath)
	if err != nil {
		return "", err
	}

	doc := gjson.ParseBytes(data)
	if !gjson.ValidBytes(data) || !doc.IsObject() {
		return "", &ParseError{Path: baseConfigPath, Err: errors.New("document is not a JSON object")}
	}

	if field := doc.Get(KeyTestFolder); field.Exists() && field.Type != gjson.Null {
		if field.Type != gjson.String {
			return "", &FieldTypeError{Path: baseConfigPath, Field: KeyTestFolder, Want: "string", Got: field.Value()}
		}
		if field.Str != "" {
			return field.Str, nil
		}
	}

	if folder, ok := r.defaults[KeyTestFolder].(string); ok && folder != "" {
		return folder, nil
	}

	return "", &MissingFieldError{Path: baseConfigPath, Field: KeyTestFolder}
}

// TestsBaseFolder returns the directory holding the page files of the base
// config at baseConfigPath.
func (r *Resolver) TestsBaseFolder(baseConfigPath string) (string, error) {
	folder, err := r.TestFolder(baseConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(baseConfigPath), folder), nil
}

// ReadDir lists the *.json files directly under folder, in the order the
// store yields them.
func (r *Resolver) ReadDir(folder string) ([]string, error) {
	files, err := r.store.Glob(filepath.Join(folder, "*"+ConfigExt))
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []string{}
	}
	r.logger.Debug("listed page configs", "folder", folder, "count", len(files))
	return files, nil
}

// ConfigFiles locates the base config and its page files.
func (r *Resolver) ConfigFiles(cwd, selector string) (ConfigFileSet, error) {
	base, ok := r.BaseConfigFile(cwd, selector)
	if !ok {
		return ConfigFileSet{}, &NotFoundError{Path: filepath.Join(cwd, DefaultConfigFilename)}
	}

	folder, err := r.TestsBaseFolder(base)
	if err != nil {
		return ConfigFileSet{}, fmt.Errorf("cannot resolve test folder: %w", err)
	}

	tests, err := r.ReadDir(folder)
	if err != nil {
		return ConfigFileSet{}, fmt.Errorf("cannot list page configs: %w", err)
	}

	return ConfigFileSet{Base: base, Tests: tests}, nil
}
