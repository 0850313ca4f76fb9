package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func geneInfoSpec() mcp.Tool {
	return mcp.NewTool("get_gene_info",
		mcp.WithDescription("Fetch gene-level information from gnomAD, including constraint metrics and per-transcript annotations. Provide either an Ensembl gene ID or a gene symbol."),
		mcp.WithString("gene_id",
			mcp.Description("Ensembl gene ID, e.g. ENSG00000169174."),
		),
		mcp.WithString("gene_symbol",
			mcp.Description("HGNC gene symbol, e.g. PCSK9."),
		),
		mcp.WithString("dataset",
			mcp.Description("gnomAD dataset ID. Only gnomad_r4 is supported."),
			mcp.DefaultString("gnomad_r4"),
		),
		mcp.WithString("reference_genome",
			mcp.Description("Reference genome build. Only GRCh38 is supported."),
			mcp.DefaultString("GRCh38"),
		),
		readOnly("Get gene info"),
	)
}

func geneInfoHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dataset := request.GetString("dataset", "gnomad_r4")
		refGenome := request.GetString("reference_genome", "GRCh38")
		geneID := request.GetString("gene_id", "")
		geneSymbol := request.GetString("gene_symbol", "")

		if dataset != "gnomad_r4" {
			return mcp.NewToolResultError("Only the gnomad_r4 dataset is supported for gene info."), nil
		}
		if refGenome != "GRCh38" {
			return mcp.NewToolResultError("Only the GRCh38 reference genome is supported for gene info."), nil
		}
		if geneID == "" && geneSymbol == "" {
			return mcp.NewToolResultError("Either gene_id or gene_symbol must be provided."), nil
		}

		vars := map[string]any{
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		if geneID != "" {
			vars["gene_id"] = geneID
		}
		if geneSymbol != "" {
			vars["gene_symbol"] = geneSymbol
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "gene", vars))
	}
}

func geneSearchSpec() mcp.Tool {
	return mcp.NewTool("search_for_genes",
		mcp.WithDescription("Search gnomAD for genes by symbol prefix or identifier. Returns matching Ensembl IDs and symbols."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text, e.g. a partial gene symbol like BRC."),
		),
		mcp.WithString("dataset",
			mcp.Required(),
			mcp.Description("gnomAD dataset ID, e.g. gnomad_r4."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build: GRCh37 or GRCh38."),
		),
		readOnly("Search for genes"),
	)
}

func geneSearchHandler(deps *Deps) server.ToolHandlerFunc {
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
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "gene_search", vars))
	}
}

func regionInfoSpec() mcp.Tool {
	return mcp.NewTool("get_region_info",
		mcp.WithDescription("Fetch all genes, variants and coverage summaries overlapping a genomic region."),
		mcp.WithString("chrom",
			mcp.Required(),
			mcp.Description("Chromosome name without a chr prefix, e.g. 1 or X."),
		),
		mcp.WithNumber("start",
			mcp.Required(),
			mcp.Description("Region start position, 1-based inclusive."),
		),
		mcp.WithNumber("stop",
			mcp.Required(),
			mcp.Description("Region stop position, 1-based inclusive."),
		),
		mcp.WithString("reference_genome",
			mcp.Required(),
			mcp.Description("Reference genome build. Only GRCh38 is supported."),
		),
		mcp.WithString("dataset",
			mcp.Description("gnomAD dataset ID. Only gnomad_r4 is supported."),
			mcp.DefaultString("gnomad_r4"),
		),
		readOnly("Get region info"),
	)
}

func regionInfoHandler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		chrom, err := request.RequireString("chrom")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		start, err := request.RequireInt("start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		stop, err := request.RequireInt("stop")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		refGenome, err := request.RequireString("reference_genome")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dataset := request.GetString("dataset", "gnomad_r4")

		if dataset != "gnomad_r4" {
			return mcp.NewToolResultError("Only the gnomad_r4 dataset is supported for region info."), nil
		}
		if refGenome != "GRCh38" {
			return mcp.NewToolResultError("Only the GRCh38 reference genome is supported for region info."), nil
		}

		vars := map[string]any{
			"chrom":            chrom,
			"start":            start,
			"stop":             stop,
			"dataset":          dataset,
			"reference_genome": refGenome,
		}
		return envelopeResult(deps.Dispatcher.DispatchEnvelope(ctx, "region", vars))
	}
}
