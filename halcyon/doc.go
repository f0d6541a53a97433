// Package halcyon stores theme templates as flat files and parses their
// "==" delimited sections.
//
// A compound template holds up to three sections: INI settings, code and
// markup.
//
//	title = "Blog"
//	url = "/blog/:slug"
//	==
//	<?php
//	function onStart() { $this['posts'] = Post::all(); }
//	?>
//	==
//	<h1>{{ title }}</h1>
//
// Parse splits a template into Sections and Render is its inverse. Templates
// themselves are read and written through a Datasource: plain files under a
// theme directory, rows in SQLite, or an ordered stack of both.
package halcyon
