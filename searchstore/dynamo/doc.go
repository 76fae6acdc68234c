// Package dynamo implements searchstore.Store on a DynamoDB table.
//
// Each photo is one item keyed by its objectKey attribute; PutItem gives
// the wholesale replace semantics the document model requires. The
// OR-match over labels is a scan with an OR-chained contains() filter,
// which is fine for collections sized like a personal photo library.
package dynamo
