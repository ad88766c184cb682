// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package media stores recipe images sent as base64 data URIs.
//
// Images are decoded with disintegration/imaging, fitted inside the
// configured maximum dimension, re-encoded in their original format under a
// random name and served below media.url_prefix.
package media
