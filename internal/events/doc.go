// Package events reads and approves scheduled maintenance events from the
// endpoint found by package discovery.
//
// The service speaks JSON over plain HTTP. Every request carries the
// "Metadata: true" header. GET returns a Document; POSTing an Approval with
// the current DocumentIncarnation starts the named events immediately
// instead of waiting for their NotBefore time.
//
//	client := events.NewClient(endpoint.String())
//	doc, err := client.GetDocument(ctx)
//	if err != nil {
//	    return err
//	}
//	approval, err := events.NewApproval(doc) // all events
//	if err != nil {
//	    return err
//	}
//	err = client.Approve(ctx, approval)
package events
