package glsl

import (
	"strings"
	"testing"
)

func TestSourcesDeclareVersion(t *testing.T) {
	sources := map[string]string{
		"planet.vert": PlanetVertexShader,
		"planet.frag": PlanetFragmentShader,
		"lit.vert":    LitVertexShader,
		"lit.frag":    LitFragmentShader,
		"skybox.vert": SkyboxVertexShader,
		"skybox.frag": SkyboxFragmentShader,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing #version 410 core header", name)
		}
	}
}

// Uniform names the scene renderer sets must exist in the sources,
// otherwise the driver silently drops them.
func TestUniformNames(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		uniforms []string
	}{
		{"planet", PlanetVertexShader + PlanetFragmentShader, []string{
			"model", "view", "projection", "objectColor", "lightColor", "lightPos", "texture_diffuse1",
		}},
		{"lit", LitVertexShader + LitFragmentShader, []string{
			"model", "view", "projection", "viewPos", "Material material", "Light light",
			"sampler2D diffuse", "vec3 specular", "float shininess", "vec3 position", "vec3 ambient",
		}},
		{"skybox", SkyboxVertexShader + SkyboxFragmentShader, []string{
			"view", "projection", "samplerCube skybox",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, u := range tt.uniforms {
				if !strings.Contains(tt.src, u) {
					t.Errorf("%s sources do not declare %q", tt.name, u)
				}
			}
		})
	}
}

func TestPlanetIsUnlit(t *testing.T) {
	for _, term := range []string{"lightPos - FragPos", "dot(", "normalize(Normal)", "diff *"} {
		if strings.Contains(PlanetFragmentShader, term) {
			t.Errorf("planet.frag shades by the light: contains %q", term)
		}
	}
	if !strings.Contains(PlanetFragmentShader, "objectColor * lightColor") {
		t.Error("planet.frag does not tint by objectColor * lightColor")
	}
}
