package overpass

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/ptstop/model"
)

// FetchObjects implements §4.1's fetch_objects: it builds the region's
// query, calls the service, and decodes the result. A non-success
// response (after retries) yields three empty sequences and a wrapped
// error the caller surfaces as a region abort.
func (c *Client) FetchObjects(ctx context.Context, regionCode, queryText string, timeout time.Duration) ([]*model.Node, []*model.Way, []*model.Relation, error) {
	query := BuildQuery(queryText, timeout, regionCode)
	body, err := c.Query(ctx, regionCode, query)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch objects for region %s: %w", regionCode, err)
	}
	nodes, ways, rels, err := Decode(body)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch objects for region %s: %w", regionCode, err)
	}
	return nodes, ways, rels, nil
}

// FetchTracks implements the §4.3 second query: given a list of node ids
// (stopos and poles), it fetches every way connected to them. The query
// text is expected to use {{ids}} as a placeholder for a comma-joined id
// list, in addition to {{area}}.
func (c *Client) FetchTracks(ctx context.Context, regionCode, queryTemplate string, nodeIDs []int64, timeout time.Duration) ([]*model.Way, error) {
	query := BuildQuery(substituteIDs(queryTemplate, nodeIDs), timeout, regionCode)
	body, err := c.Query(ctx, regionCode+":tracks", query)
	if err != nil {
		return nil, fmt.Errorf("fetch tracks for region %s: %w", regionCode, err)
	}
	_, ways, _, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("fetch tracks for region %s: %w", regionCode, err)
	}
	return ways, nil
}

func substituteIDs(template string, ids []int64) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.FormatInt(id, 10)
	}
	return strings.ReplaceAll(template, "{{ids}}", strings.Join(strs, ","))
}
