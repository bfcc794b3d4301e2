// Package render serializes the synthesized artifacts: the environment
// descriptor to its YAML document and the build script to shell text. All
// rendering is deterministic; identical inputs produce identical bytes.
package render

import (
	"bytes"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Renderer implements ports.DescriptorRenderer and ports.ScriptRenderer.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// descriptorDoc is the serialization shape of the descriptor. Struct field
// order fixes the top-level section order; yaml.v3 emits map keys sorted, so
// the whole document is deterministic.
type descriptorDoc struct {
	Spack spackDoc `yaml:"spack"`
}

type spackDoc struct {
	Specs        []string              `yaml:"specs"`
	Packages     map[string]packageDoc `yaml:"packages"`
	View         viewSection           `yaml:"view"`
	Mirrors      map[string]mirrorDoc  `yaml:"mirrors"`
	Compilers    []string              `yaml:"compilers"`
	Modules      modulesSection        `yaml:"modules"`
	Verification *verificationDoc      `yaml:"verification,omitempty"`
}

type packageDoc struct {
	Buildable bool          `yaml:"buildable"`
	Externals []externalDoc `yaml:"externals,omitempty"`
	Version   []string      `yaml:"version,omitempty"`
	Require   []string      `yaml:"require,omitempty"`
}

type externalDoc struct {
	Spec   string `yaml:"spec"`
	Prefix string `yaml:"prefix"`
}

type viewSection struct {
	Default viewDoc `yaml:"default"`
}

type viewDoc struct {
	Root        string            `yaml:"root"`
	Link        string            `yaml:"link"`
	Projections map[string]string `yaml:"projections"`
	Exclude     []string          `yaml:"exclude"`
}

type mirrorDoc struct {
	URL    string `yaml:"url"`
	Signed bool   `yaml:"signed"`
}

type modulesSection struct {
	Default moduleDefault `yaml:"default"`
}

type moduleDefault struct {
	Enable []string `yaml:"enable"`
	Lmod   lmodDoc  `yaml:"lmod"`
}

type lmodDoc struct {
	CoreCompilers []string                  `yaml:"core_compilers"`
	Hierarchy     []string                  `yaml:"hierarchy"`
	Packages      map[string]lmodPackageDoc `yaml:",inline"`
}

type lmodPackageDoc struct {
	Autoload    string  `yaml:"autoload,omitempty"`
	Environment *envDoc `yaml:"environment,omitempty"`
}

type envDoc struct {
	Set map[string]string `yaml:"set"`
}

type verificationDoc struct {
	Relocatability         bool `yaml:"relocatability"`
	DependencyCompleteness bool `yaml:"dependency_completeness"`
	SharedLibraryDeps      bool `yaml:"shared_library_deps"`
}

// RenderDescriptor serializes the descriptor as the YAML document the
// package manager consumes inside the container.
func (r *Renderer) RenderDescriptor(desc *domain.EnvironmentDescriptor) ([]byte, error) {
	doc := descriptorDoc{
		Spack: spackDoc{
			Specs:        desc.Specs,
			Packages:     packageDocs(desc.Packages),
			View:         viewSection{Default: viewDocFrom(desc.View)},
			Mirrors:      mirrorDocs(desc.Mirrors),
			Compilers:    desc.Compilers,
			Modules:      modulesSection{Default: moduleDocFrom(desc.Modules)},
			Verification: verificationDocFrom(desc.Verification),
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, zerr.Wrap(domain.ErrDescriptorRenderFailed, err.Error())
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(domain.ErrDescriptorRenderFailed, err.Error())
	}
	return buf.Bytes(), nil
}

func packageDocs(policies map[string]domain.PackagePolicy) map[string]packageDoc {
	docs := make(map[string]packageDoc, len(policies))
	for name, p := range policies {
		doc := packageDoc{
			Buildable: p.Buildable,
			Version:   p.Versions,
			Require:   append(append([]string{}, p.Require...), p.Dependencies...),
		}
		for _, ext := range p.Externals {
			doc.Externals = append(doc.Externals, externalDoc(ext))
		}
		docs[name] = doc
	}
	return docs
}

func viewDocFrom(v domain.ViewPolicy) viewDoc {
	return viewDoc{
		Root:        v.Root,
		Link:        v.LinkType,
		Projections: map[string]string{"all": v.Projection},
		Exclude:     v.Exclude,
	}
}

func mirrorDocs(mirrors []domain.MirrorEntry) map[string]mirrorDoc {
	docs := make(map[string]mirrorDoc, len(mirrors))
	for _, m := range mirrors {
		docs[m.Name] = mirrorDoc{URL: m.URL, Signed: m.Signed}
	}
	return docs
}

func moduleDocFrom(m domain.ModulePolicy) moduleDefault {
	lmod := lmodDoc{
		CoreCompilers: m.CoreCompilers,
		Hierarchy:     m.Hierarchy,
		Packages:      map[string]lmodPackageDoc{},
	}

	for pkg, mode := range m.Autoload {
		doc := lmod.Packages[pkg]
		doc.Autoload = mode
		lmod.Packages[pkg] = doc
	}
	for pkg, env := range m.PackageEnv {
		doc := lmod.Packages[pkg]
		doc.Environment = &envDoc{Set: env}
		lmod.Packages[pkg] = doc
	}

	return moduleDefault{
		Enable: []string{"lmod"},
		Lmod:   lmod,
	}
}

func verificationDocFrom(v *domain.Verification) *verificationDoc {
	if v == nil {
		return nil
	}
	return &verificationDoc{
		Relocatability:         v.Relocatability,
		DependencyCompleteness: v.DependencyCompleteness,
		SharedLibraryDeps:      v.SharedLibraryDeps,
	}
}
