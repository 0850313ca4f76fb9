package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func strInfoSpec() mcp.Tool {
	return mcp.NewTool("get_str_info",
		mcp.WithDescription("Fetch allele size distributions and genotype data for a short tandem repeat locus."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Short tandem repeat locus ID, e.g. ATXN1."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build. Only GRCh38 is supported."),
		),
		mcp.WithString("dataset",
			mcp.Description("gnomAD dataset ID. Only gnomad_r4 is supported."),
			mcp.DefaultString("gnomad_r4"),
		),
		readOnly("Get short tandem repeat info"),
	)
}

func strInfoHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset := request.GetString("dataset", "gnomad_r4")

		if dataset != "gnomad_r4" {
			return mcp.NewToolResultError("Only the gnomad_r4 dataset is supported for short tandem repeat info."), nil
		}

		vars := map[string]any{
			"id":               id,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "short_tandem_repeat", vars))
	}
}

func liftoverSpec() mcp.Tool {
	return mcp.NewTool("get_variant_liftover",
		mcp.WithDescription("Map a variant between GRCh37 and GRCh38 coordinates. Provide exactly one of source_variant_id (a GRCh37 variant) or liftover_variant_id (a GRCh38 variant)."),
		mcp.WithString("source_variant_id",
			mcp.Description("GRCh37 variant ID to lift forward. Requires reference_genome GRCh37."),
		),
		mcp.WithString("liftover_variant_id",
			mcp.Description("GRCh38 variant ID to lift back. Requires reference_genome GRCh38."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Build of the provided variant ID: GRCh37 or GRCh38."),
		),
		mcp.WithString("dataset",
			mcp.Description("gnomAD dataset ID. Only gnomad_r2_1 is supported."),
			mcp.DefaultString("gnomad_r2_1"),
		),
		readOnly("Get variant liftover"),
	)
}

func liftoverHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sourceID := request.GetString("source_variant_id", "")
		liftoverID := request.GetString("liftover_variant_id", "")
		dataset := request.GetString("dataset", "gnomad_r2_1")

		if dataset != "gnomad_r2_1" {
			return mcp.NewToolResultError("Only the gnomad_r2_1 dataset is supported for liftover."), nil
		}
		if (sourceID == "") == (liftoverID == "") {
			return mcp.NewToolResultError("Exactly one of source_variant_id or liftover_variant_id must be provided."), nil
		}
		if sourceID != "" && refGenome != "GRCh37" {
			return mcp.NewToolResultError("source_variant_id identifies a GRCh37 variant; reference_genome must be GRCh37."), nil
		}
		if liftoverID != "" && refGenome != "GRCh38" {
			return mcp.NewToolResultError("liftover_variant_id identifies a GRCh38 variant; reference_genome must be GRCh38."), nil
		}

		vars := map[string]any{
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		if sourceID != "" {
			vars["source_variant_id"] = sourceID
		}
		if liftoverID != "" {
			vars["liftover_variant_id"] = liftoverID
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "liftover", vars))
	}
}

func metadataSpec() mcp.Tool {
	return mcp.NewTool("get_metadata",
		mcp.WithDescription("Fetch dataset metadata from gnomAD, such as the ClinVar release date bundled with a dataset."),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("gnomAD dataset ID, e.g. gnomad_r4."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build: GRCh37 or GRCh38."),
		),
		readOnly("Get dataset metadata"),
	)
}

func metadataHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dataset, err := request.RequireString("dataset")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		vars := map[string]any{
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "meta", vars))
	}
}
