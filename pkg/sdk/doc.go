// Package sdk provides a Go client for the capacita course-catalog API.
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	resp, _ := client.Search(ctx, "licitação", sdk.SearchFilters{})
//	for _, r := range resp.Results {
//	    fmt.Println(r.Course.Title, r.Score)
//	}
package sdk
