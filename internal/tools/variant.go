package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func variantInfoSpec() mcp.Tool {
	return mcp.NewTool("get_variant_info",
		mcp.WithDescription("Fetch population frequencies and annotations for a single variant, identified as chrom-pos-ref-alt."),
		mcp.WithString("variantId",
			mcp.Required(),
			mcp.Description("Variant ID in chrom-pos-ref-alt form, e.g. 1-55051215-G-GA."),
		),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("gnomAD dataset ID, e.g. gnomad_r4."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build: GRCh37 or GRCh38."),
		),
		readOnly("Get variant info"),
	)
}

func variantInfoHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variantID, err := request.RequireString("variantId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset, err := request.RequireString("dataset")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		vars := map[string]any{
			"variantId":        variantID,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "variant", vars))
	}
}

func clinvarVariantSpec() mcp.Tool {
	return mcp.NewTool("get_clinvar_variant_info",
		mcp.WithDescription("Fetch the ClinVar record for a variant: clinical significance, review status and submissions."),
		mcp.WithString("variant_id",
			mcp.Required(),
			mcp.Description("Variant ID in chrom-pos-ref-alt form."),
		),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("gnomAD dataset ID, e.g. gnomad_r4."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build: GRCh37 or GRCh38."),
		),
		readOnly("Get ClinVar variant info"),
	)
}

func clinvarVariantHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variantID, err := request.RequireString("variant_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset, err := request.RequireString("dataset")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		vars := map[string]any{
			"variant_id":       variantID,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "clinvar_variant", vars))
	}
}

func mitochondrialVariantSpec() mcp.Tool {
	return mcp.NewTool("get_mitochondrial_variant_info",
		mcp.WithDescription("Fetch heteroplasmy distributions and annotations for a mitochondrial variant."),
		mcp.WithString("variant_id",
			mcp.Required(),
			mcp.Description("Mitochondrial variant ID, e.g. M-8602-T-C."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build. Only GRCh38 is supported."),
		),
		mcp.WithString("dataset",
			mcp.Description("gnomAD dataset ID. Only gnomad_r4 is supported."),
			mcp.DefaultString("gnomad_r4"),
		),
		readOnly("Get mitochondrial variant info"),
	)
}

func mitochondrialVariantHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variantID, err := request.RequireString("variant_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset := request.GetString("dataset", "gnomad_r4")

		if dataset != "gnomad_r4" {
			return mcp.NewToolResultError("Only the gnomad_r4 dataset is supported for mitochondrial variant info."), nil
		}
		if refGenome != "GRCh38" {
			return mcp.NewToolResultError("Only the GRCh38 reference genome is supported for mitochondrial variant info."), nil
		}

		vars := map[string]any{
			"variant_id":       variantID,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "mitochondrial_variant", vars))
	}
}

func structuralVariantSpec() mcp.Tool {
	return mcp.NewTool("get_structural_variant_info",
		mcp.WithDescription("Fetch details for a structural variant such as a deletion, duplication or inversion."),
		mcp.WithString("variantId",
			mcp.Required(),
			mcp.Description("Structural variant ID, e.g. DEL_CHR1_FINAL_1."),
		),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("Structural variant dataset ID: gnomad_sv_r2_1 or gnomad_sv_r4."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build: GRCh37 or GRCh38."),
		),
		readOnly("Get structural variant info"),
	)
}

func structuralVariantHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variantID, err := request.RequireString("variantId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset, err := request.RequireString("dataset")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		vars := map[string]any{
			"variantId":        variantID,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "structural_variant", vars))
	}
}

func copyNumberVariantSpec() mcp.Tool {
	return mcp.NewTool("get_copy_number_variant_info",
		mcp.WithDescription("Fetch details for a copy number variant from the gnomAD CNV callset."),
		mcp.WithString("variantId",
			mcp.Required(),
			mcp.Description("Copy number variant ID."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build. Only GRCh38 is supported."),
		),
		mcp.WithString("dataset",
			mcp.Description("CNV dataset ID. Only gnomad_cnv_r4 is supported."),
			mcp.DefaultString("gnomad_cnv_r4"),
		),
		readOnly("Get copy number variant info"),
	)
}

func copyNumberVariantHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variantID, err := request.RequireString("variantId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset := request.GetString("dataset", "gnomad_cnv_r4")

		if dataset != "gnomad_cnv_r4" {
			return mcp.NewToolResultError("Only the gnomad_cnv_r4 dataset is supported for copy number variant info."), nil
		}
		if refGenome != "GRCh38" {
			return mcp.NewToolResultError("Only the GRCh38 reference genome is supported for copy number variant info."), nil
		}

		vars := map[string]any{
			"variantId":        variantID,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "copy_number_variant", vars))
	}
}

func variantSearchSpec() mcp.Tool {
	return mcp.NewTool("search_for_variants",
		mcp.WithDescription("Search gnomAD for variants by rsID, ClinVar variation ID or chrom-pos-ref-alt text."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text, e.g. rs527413419."),
		),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("gnomAD dataset ID, e.g. gnomad_r4."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build: GRCh37 or GRCh38."),
		),
		readOnly("Search for variants"),
	)
}

func variantSearchHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset, err := request.RequireString("dataset")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		vars := map[string]any{
			"query":            query,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "variant_search", vars))
	}
}
