// Package photosearch indexes and searches a photo collection by label
// metadata.
//
// Two independent, stateless pipelines share one document model:
//
//   - Ingestor: object bytes → recognition labels + custom-label header →
//     merged PhotoDocument → upsert into the search store
//   - Searcher: free text → keyword slot extraction → OR-match over the
//     labels field → URL-bearing results
//
// External collaborators are abstracted behind narrow interfaces so they
// can be faked in tests: objectstore.Store (bucket storage),
// recognition.Detector (image recognition), interpret.Interpreter
// (language understanding) and searchstore.Store (document index).
// Production implementations live in subpackages (objectstore/s3,
// objectstore/minio, recognition/rekognition, interpret/lex,
// searchstore/opensearch, searchstore/dynamo).
//
// # Quick Start
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//
//	objects := objstores3.NewStore(s3.NewFromConfig(cfg), cfg.Region)
//	detector := rekognition.NewDetector(awsrek.NewFromConfig(cfg))
//	index := opensearch.NewStore(osClient, "photos")
//
//	ingestor := photosearch.NewIngestor(
//	    objects,
//	    recognition.NewExtractor(detector),
//	    index,
//	    photosearch.WithLogger(photosearch.NewJSONLogger(slog.LevelInfo)),
//	)
//	_ = ingestor.Ingest(ctx, "photos-bucket", "img1.jpg")
//
//	searcher := photosearch.NewSearcher(
//	    lex.NewInterpreter(lexClient, botID, aliasID),
//	    index,
//	    objects,
//	)
//	results, _ := searcher.Search(ctx, "show me park photos")
//
// Each Ingest and Search invocation is an independent request→response
// transformation; re-ingesting an object key is idempotent given identical
// inputs.
package photosearch
