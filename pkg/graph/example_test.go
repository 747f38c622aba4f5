package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/includeviz/pkg/graph"
)

func ExampleReadGraph() {
	input := `{
		"root": "main.cpp",
		"direct": ["app.h"],
		"edges": [
			{"from": "app.h", "to": "vector.h"},
			{"from": "app.h", "to": "string.h"},
			{"from": "string.h", "to": "vector.h"}
		]
	}`

	g, err := graph.ReadGraph(strings.NewReader(input))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("seeds:", g.Seeds())
	fmt.Println("headers:", g.Headers())
	fmt.Println("vector.h included", g.IncludeCount("vector.h"), "times")
	// Output:
	// seeds: [app.h]
	// headers: [app.h string.h vector.h]
	// vector.h included 2 times
}

func ExampleGraph_Trace() {
	g := &graph.Graph{Root: "main.cpp", Direct: []string{"app.h", "net.h"}}
	g.AddEdge("app.h", "util.h")
	g.AddEdge("net.h", "util.h")
	g.AddEdge("util.h", "vector.h")

	res := g.Trace("", "vector.h", 5)
	fmt.Printf("%d shortest path(s)\n", res.Total)
	for _, p := range res.Paths {
		fmt.Println(strings.Join(p, " -> "))
	}
	// Output:
	// 2 shortest path(s)
	// main.cpp -> app.h -> util.h -> vector.h
	// main.cpp -> net.h -> util.h -> vector.h
}
