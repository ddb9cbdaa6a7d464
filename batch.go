package elainadb

// QueryBatch submits each query to the bounded worker pool and collects
// one result per input, in input order. Failures are isolated per slot:
// a query that errors or outlives the batch timeout yields nil without
// failing its siblings.
func (c *client) QueryBatch(queries ...BatchQuery) []interface{} {
	slots := make([]chan interface{}, len(queries))

	for i, query := range queries {
		slot := make(chan interface{}, 1)
		slots[i] = slot

		query := query
		if err := c.workers.Submit(func() { slot <- c.runBatchQuery(query) }); err != nil {
			slot <- nil
		}
	}

	results := make([]interface{}, len(queries))
	for i, slot := range slots {
		select {
		case result := <-slot:
			results[i] = result
		case <-c.clock.After(c.batchTimeout):
			c.logger.Printf("Batch query %d did not complete in time", i)
			results[i] = nil
		}
	}

	return results
}

func (c *client) runBatchQuery(query BatchQuery) interface{} {
	if query.All {
		rows, ok := c.QueryAll(query.Query, query.Args...)
		if !ok {
			return nil
		}

		return rows
	}

	row, ok := c.QueryOne(query.Query, query.Args...)
	if !ok {
		return nil
	}

	return row
}
