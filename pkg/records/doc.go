// Package records persists submitted form records in a kvstore.Store.
//
// A Book binds a store, a key and a persistence mode:
//
//	book, err := records.ForSchema(store, schema)
//	rec, err := session.TrySubmit()
//	if err == nil {
//		err = book.Save(ctx, rec)
//	}
//
// Overwrite mode keeps a single JSON object; append mode keeps a JSON array.
// Stored values that fail to decode are reported as ErrCorruptData.
package records
