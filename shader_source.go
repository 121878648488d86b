package main

const vsNodeSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	layout (location = 1) in uint aVertexColor;
	layout (location = 2) in float aVertexSize;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform float uPointScale;
	uniform float uPointSizeMax;
	vec4 viewPosition;
	out lowp vec4 vColor;

	void main(void) {
		viewPosition = uModelViewMatrix * aVertexPosition;
		gl_Position = uProjectionMatrix * viewPosition;
		gl_PointSize = clamp(aVertexSize * uPointScale / length(viewPosition), 1.0, uPointSizeMax);

		vColor = vec4(
			float((aVertexColor >> 16) & 0xffu) / 255.0,
			float((aVertexColor >> 8) & 0xffu) / 255.0,
			float(aVertexColor & 0xffu) / 255.0,
			1.0);
	}
`

// Nodes are drawn as round points.
const fsNodeSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		lowp vec2 d = gl_PointCoord - vec2(0.5, 0.5);
		if (dot(d, d) > 0.25) {
			discard;
		}
		outColor = vColor;
	}
`

const vsLinkSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	layout (location = 1) in uint aVertexColor;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform lowp float uAlpha;
	out lowp vec4 vColor;

	void main(void) {
		gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
		vColor = vec4(
			float((aVertexColor >> 16) & 0xffu) / 255.0,
			float((aVertexColor >> 8) & 0xffu) / 255.0,
			float(aVertexColor & 0xffu) / 255.0,
			uAlpha);
	}
`

const fsLinkSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		outColor = vColor;
	}
`
