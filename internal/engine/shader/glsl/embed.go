// Package glsl provides embedded GLSL shader sources.
package glsl

import _ "embed"

// PlanetVertexShader is the vertex shader for the textured planet model.
//
//go:embed planet.vert
var PlanetVertexShader string

// PlanetFragmentShader is the fragment shader for the textured planet model.
//
//go:embed planet.frag
var PlanetFragmentShader string

// LitVertexShader is the vertex shader for the Phong-lit cubes.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader is the fragment shader for the Phong-lit cubes.
//
//go:embed lit.frag
var LitFragmentShader string

// SkyboxVertexShader is the vertex shader for the cube map background.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the cube map background.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
