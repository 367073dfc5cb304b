// Package service orchestrates one full generation run: snapshot load,
// join resolution, persistence, and artifact emission.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"regmap/internal/codegen/filter"
	"regmap/internal/codegen/nav"
	"regmap/internal/compiler"
	"regmap/internal/config"
	"regmap/internal/domain"
)

// GenerationService runs the mapping compiler end to end.
type GenerationService struct {
	meta    domain.MetadataReader
	mapping domain.MappingWriter
	static  config.StaticTables
	outDir  string
	logger  *slog.Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(meta domain.MetadataReader, mapping domain.MappingWriter, static config.StaticTables, outDir string, logger *slog.Logger) *GenerationService {
	return &GenerationService{
		meta:    meta,
		mapping: mapping,
		static:  static,
		outDir:  outDir,
		logger:  logger,
	}
}

// TemplateResult summarises one report template's artifacts.
type TemplateResult struct {
	Template   string
	Links      int
	ItemLinks  int
	Classes    int
	SourceFile string
	PageFile   string
}

// RunReport is the outcome of one generation run. A run that returns a
// report completed: degraded cells and columns are enumerated in Diags
// rather than failing the run.
type RunReport struct {
	Results []TemplateResult
	Diags   []domain.Diag
}

// templateArtifacts holds one template's computed outputs before anything
// is persisted or written.
type templateArtifacts struct {
	template    string
	resolutions []compiler.Resolution
	source      []byte
	page        []byte
	result      TemplateResult
}

// Generate runs the compiler for the requested templates (all in-scope
// templates when the list is empty). Everything is computed in memory
// first; the store and the output directory are only touched once every
// template resolved, so a fatal failure never commits partial artifacts.
func (s *GenerationService) Generate(ctx context.Context, templates []string) (*RunReport, error) {
	targets, err := s.targetTemplates(templates)
	if err != nil {
		return nil, err
	}

	snap, err := compiler.LoadSnapshot(ctx, s.meta)
	if err != nil {
		return nil, fmt.Errorf("load metadata snapshot: %w", err)
	}
	run := compiler.NewRun(snap, s.static.ProductTypeVariable, s.static.ProductSlices)
	builder := filter.NewBuilder(run, s.static.WildcardMemberCode)

	var artifacts []templateArtifacts
	for _, target := range targets {
		art, err := s.compileTemplate(run, builder, target)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, art)
	}

	for i := range artifacts {
		if err := s.persist(ctx, &artifacts[i]); err != nil {
			return nil, err
		}
	}
	if err := s.writeArtifacts(artifacts, targets); err != nil {
		return nil, err
	}

	report := &RunReport{Diags: run.Diags.All()}
	for _, art := range artifacts {
		report.Results = append(report.Results, art.result)
		s.logger.Info("template generated",
			"template", art.result.Template,
			"links", art.result.Links,
			"item_links", art.result.ItemLinks,
			"classes", art.result.Classes)
	}
	for _, diag := range report.Diags {
		s.logger.Warn("degraded", "kind", diag.Kind, "subject", diag.Subject, "detail", diag.Message)
	}
	return report, nil
}

// targetTemplates resolves the requested template codes against the
// static in-scope list.
func (s *GenerationService) targetTemplates(requested []string) ([]config.TemplateConfig, error) {
	if len(requested) == 0 {
		if len(s.static.Templates) == 0 {
			return nil, domain.ErrValidation("no report templates in scope")
		}
		return s.static.Templates, nil
	}
	var out []config.TemplateConfig
	for _, code := range requested {
		tmpl, ok := s.static.Template(code)
		if !ok {
			return nil, domain.ErrNotFound("report template %q is not in scope", code)
		}
		out = append(out, tmpl)
	}
	return out, nil
}

// compileTemplate resolves the join graph and renders the source file and
// navigation page for one template, in memory.
func (s *GenerationService) compileTemplate(run *compiler.Run, builder *filter.Builder, target config.TemplateConfig) (templateArtifacts, error) {
	art := templateArtifacts{template: target.Code}

	inputs := run.Snap.InputCubes(target.FrameworkCode)
	for _, reportCube := range run.Snap.ReportCubes(target.FrameworkCode) {
		res := run.Resolver.Resolve(target.Code, reportCube, inputs)
		art.resolutions = append(art.resolutions, res)
		art.result.Links += len(res.Links)
		art.result.ItemLinks += len(res.ItemLinks)
	}

	model := builder.BuildFile(target.Code)
	existing, err := os.ReadFile(s.sourcePath(target.Code)) //nolint:gosec // path built from config
	if err != nil && !os.IsNotExist(err) {
		return art, fmt.Errorf("read previous source for %s: %w", target.Code, err)
	}
	art.source, err = filter.Render(model, existing)
	if err != nil {
		return art, fmt.Errorf("render filter source for %s: %w", target.Code, err)
	}

	cells := make([]nav.Cell, 0, len(model.Classes))
	for _, class := range model.Classes {
		cells = append(cells, nav.Cell{
			CombinationCode: class.CombinationCode,
			ClassName:       class.Name,
			MetricVariable:  class.MetricVariable,
			Products:        class.Products,
			Degraded:        class.NeverMatch || len(class.Products) == 0,
		})
	}
	art.page, err = nav.RenderPage(nav.TemplatePage(target.Code, cells))
	if err != nil {
		return art, fmt.Errorf("render navigation page for %s: %w", target.Code, err)
	}

	art.result = TemplateResult{
		Template:   target.Code,
		Links:      art.result.Links,
		ItemLinks:  art.result.ItemLinks,
		Classes:    len(model.Classes),
		SourceFile: s.sourcePath(target.Code),
		PageFile:   filepath.Join(s.outDir, nav.PageFileName(target.Code)),
	}
	return art, nil
}

// persist writes a template's join graph back to the store in one
// transaction, so a failure mid-persist commits nothing. Item links are
// rebound to the stored cube link IDs, since an identity that already
// exists keeps its original ID.
func (s *GenerationService) persist(ctx context.Context, art *templateArtifacts) error {
	return s.mapping.WithTx(ctx, func(w domain.MappingWriter) error {
		for _, res := range art.resolutions {
			storedID := map[string]string{}
			for i := range res.Links {
				id, err := w.InsertCubeLink(ctx, &res.Links[i])
				if err != nil {
					return fmt.Errorf("persist cube link %s: %w", res.Links[i].Code, err)
				}
				storedID[res.Links[i].ID] = id
			}
			for i := range res.ItemLinks {
				link := res.ItemLinks[i]
				link.CubeLinkID = storedID[link.CubeLinkID]
				if err := w.InsertItemLink(ctx, &link); err != nil {
					return fmt.Errorf("persist item link: %w", err)
				}
			}
		}
		return nil
	})
}

// writeArtifacts writes every template's source file and navigation page
// plus the template index page.
func (s *GenerationService) writeArtifacts(artifacts []templateArtifacts, targets []config.TemplateConfig) error {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, art := range artifacts {
		if err := os.WriteFile(art.result.SourceFile, art.source, 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("write %s: %w", art.result.SourceFile, err)
		}
		if err := os.WriteFile(art.result.PageFile, art.page, 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("write %s: %w", art.result.PageFile, err)
		}
	}

	codes := make([]string, 0, len(targets))
	for _, t := range targets {
		codes = append(codes, t.Code)
	}
	index, err := nav.RenderPage(nav.IndexPage(codes))
	if err != nil {
		return err
	}
	indexPath := filepath.Join(s.outDir, "index.html")
	if err := os.WriteFile(indexPath, index, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write %s: %w", indexPath, err)
	}
	return nil
}

func (s *GenerationService) sourcePath(template string) string {
	return filepath.Join(s.outDir, fmt.Sprintf("template_%s.py", filter.Identifier(template)))
}
