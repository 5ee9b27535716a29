// meshtool is a CLI utility for inspecting TMSH terrain files.
package main

import (
	"fmt"
	gomath "math"
	"os"

	"github.com/Faultbox/summitgen/internal/terrain"
	"github.com/Faultbox/summitgen/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "verify":
		cmdVerify(args)
	case "obj":
		cmdOBJ(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - TMSH terrain mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <file.tmsh>           Show mesh information
  verify <file.tmsh>         Check indices, bounds and normals
  obj <file.tmsh> [out.obj]  Convert to Wavefront OBJ (stdout by default)

Examples:
  meshtool info terrain.tmsh
  meshtool verify terrain-3.tmsh
  meshtool obj terrain.tmsh terrain.obj`)
}

func load(usage string, args []string) *formats.TMSH {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	m, err := formats.LoadTMSH(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	m := load("Usage: meshtool info <file.tmsh>", args)

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Version:   %s\n", m.Version)
	fmt.Printf("Vertices:  %d\n", len(m.Vertices))
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Normals:   %v\n", m.Normals != nil)
	if m.PatchVertexCount > 0 {
		fmt.Printf("Patches:   %d x %d vertices\n", m.PatchCount, m.PatchVertexCount)
	} else {
		fmt.Printf("Patches:   %d (welded)\n", m.PatchCount)
	}
	fmt.Printf("Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		m.BoundsMin[0], m.BoundsMin[1], m.BoundsMin[2],
		m.BoundsMax[0], m.BoundsMax[1], m.BoundsMax[2])
}

func cmdVerify(args []string) {
	m := load("Usage: meshtool verify <file.tmsh>", args)

	// ParseTMSH already rejected out-of-range indices.
	mesh, err := terrain.MeshFromTMSH(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var problems []string

	stored := [2][3]float32{m.BoundsMin, m.BoundsMax}
	computed := mesh.ToTMSH()
	if stored != [2][3]float32{computed.BoundsMin, computed.BoundsMax} {
		problems = append(problems, fmt.Sprintf("stored bounds %v do not match vertices %v",
			stored, [2][3]float32{computed.BoundsMin, computed.BoundsMax}))
	}

	if m.PatchVertexCount > 0 && int(m.PatchCount)*int(m.PatchVertexCount) != len(m.Vertices) {
		problems = append(problems, fmt.Sprintf("%d patches of %d vertices but %d vertices stored",
			m.PatchCount, m.PatchVertexCount, len(m.Vertices)))
	}

	for i, n := range m.Normals {
		l := gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		if gomath.Abs(l-1) > 1e-3 {
			problems = append(problems, fmt.Sprintf("normal %d has length %g", i, l))
			break
		}
	}

	degenerate := 0
	for tri := 0; tri < len(m.Indices); tri += 3 {
		a, b, c := m.Indices[tri], m.Indices[tri+1], m.Indices[tri+2]
		if a == b || b == c || a == c {
			degenerate++
		}
	}
	if degenerate > 0 {
		problems = append(problems, fmt.Sprintf("%d degenerate triangles", degenerate))
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "FAIL: %s\n", p)
		}
		os.Exit(1)
	}
	fmt.Printf("OK: %s (%d vertices, %d triangles)\n", args[0], len(m.Vertices), m.TriangleCount())
}

func cmdOBJ(args []string) {
	m := load("Usage: meshtool obj <file.tmsh> [out.obj]", args)

	out := os.Stdout
	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := formats.WriteOBJ(out, m, "terrain"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
