package theme

import (
	"strings"
	"text/template"
)

var textTemplates = template.Must(template.New("theme").Funcs(template.FuncMap{
	"php":     phpString,
	"comment": commentValue,
}).Parse(styleCSSTemplate + functionsTemplate + readmeTemplate))

type metaView struct {
	Name        string
	Slug        string
	Prefix      string
	Description string
	Author      string
	AuthorURI   string
	Tags        string
	HasContact  bool
	Extras      bool
	Files       []string
}

func execText(name string, v metaView) (string, error) {
	var b strings.Builder
	if err := textTemplates.ExecuteTemplate(&b, name, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// phpString escapes s for a single-quoted PHP literal.
func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// commentValue keeps s on one line and unable to close a block comment.
func commentValue(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "*/", "* /")
}

const styleCSSTemplate = `{{define "style.css"}}/*
Theme Name: {{comment .Name}}
Theme URI: {{comment .AuthorURI}}
Author: {{comment .Author}}
Author URI: {{comment .AuthorURI}}
Description: {{comment .Description}}
Version: 1.0.0
Requires at least: 6.4
Tested up to: 6.7
Requires PHP: 7.4
License: GNU General Public License v2 or later
License URI: http://www.gnu.org/licenses/gpl-2.0.html
Text Domain: {{.Slug}}
Tags: {{.Tags}}
*/
{{end}}`

const functionsTemplate = `{{define "functions.php"}}<?php
/**
 * {{comment .Name}} functions and definitions.
 *
 * @package {{.Slug}}
 */

if ( ! defined( 'ABSPATH' ) ) {
	exit;
}

function {{.Prefix}}_setup() {
	add_theme_support( 'wp-block-styles' );
	add_theme_support( 'editor-styles' );
	add_theme_support( 'responsive-embeds' );
	add_editor_style( 'assets/css/theme.css' );
}
add_action( 'after_setup_theme', '{{.Prefix}}_setup' );

function {{.Prefix}}_enqueue_assets() {
	$version = wp_get_theme()->get( 'Version' );
	wp_enqueue_style( '{{.Slug}}-fonts', 'https://fonts.googleapis.com/css2?family=Plus+Jakarta+Sans:wght@400;500;600;700;800&family=Inter:wght@300;400;500;600&display=swap', array(), null );
	wp_enqueue_style( '{{.Slug}}-style', get_stylesheet_uri(), array(), $version );
	wp_enqueue_style( '{{.Slug}}-theme', get_theme_file_uri( 'assets/css/theme.css' ), array( '{{.Slug}}-style' ), $version );
{{- if .Extras}}
	wp_enqueue_script( '{{.Slug}}-theme', get_theme_file_uri( 'assets/js/theme.js' ), array(), $version, true );
{{- end}}
}
add_action( 'wp_enqueue_scripts', '{{.Prefix}}_enqueue_assets' );

function {{.Prefix}}_register_pattern_category() {
	register_block_pattern_category(
		'{{.Slug}}',
		array( 'label' => '{{php .Name}}' )
	);
}
add_action( 'init', '{{.Prefix}}_register_pattern_category' );

remove_action( 'wp_head', 'wp_generator' );
remove_action( 'wp_head', 'wlwmanifest_link' );
remove_action( 'wp_head', 'rsd_link' );
remove_action( 'wp_head', 'wp_shortlink_wp_head' );
{{- if .HasContact}}

function {{.Prefix}}_contact_redirect( $status ) {
	$target = wp_get_referer() ? wp_get_referer() : home_url( '/' );
	wp_safe_redirect( add_query_arg( 'contact', $status, $target ) . '#contact' );
	exit;
}

function {{.Prefix}}_handle_contact() {
	$nonce = isset( $_POST['{{.Prefix}}_nonce'] ) ? sanitize_text_field( wp_unslash( $_POST['{{.Prefix}}_nonce'] ) ) : '';
	if ( ! wp_verify_nonce( $nonce, '{{.Prefix}}_contact' ) ) {
		{{.Prefix}}_contact_redirect( 'error' );
	}
	if ( ! empty( $_POST['website'] ) ) {
		{{.Prefix}}_contact_redirect( 'sent' );
	}

	$name    = isset( $_POST['name'] ) ? sanitize_text_field( wp_unslash( $_POST['name'] ) ) : '';
	$email   = isset( $_POST['email'] ) ? sanitize_email( wp_unslash( $_POST['email'] ) ) : '';
	$phone   = isset( $_POST['phone'] ) ? sanitize_text_field( wp_unslash( $_POST['phone'] ) ) : '';
	$message = isset( $_POST['message'] ) ? sanitize_textarea_field( wp_unslash( $_POST['message'] ) ) : '';
	if ( '' === $name || ! is_email( $email ) || '' === $message ) {
		{{.Prefix}}_contact_redirect( 'error' );
	}

	$subject = sprintf( '[%s] Nuevo mensaje de %s', get_bloginfo( 'name' ), $name );
	$body    = sprintf( "Nombre: %s\nEmail: %s\nTeléfono: %s\n\n%s", $name, $email, $phone, $message );
	$headers = array( sprintf( 'Reply-To: %s <%s>', $name, $email ) );
	$sent    = wp_mail( get_option( 'admin_email' ), $subject, $body, $headers );

	{{.Prefix}}_contact_redirect( $sent ? 'sent' : 'error' );
}
add_action( 'admin_post_{{.Prefix}}_contact', '{{.Prefix}}_handle_contact' );
add_action( 'admin_post_nopriv_{{.Prefix}}_contact', '{{.Prefix}}_handle_contact' );
{{- end}}
{{end}}`

const readmeTemplate = `{{define "README.md"}}# {{.Name}}

{{.Description}}

Block theme for WordPress 6.4 or later. Text domain: ` + "`{{.Slug}}`" + `.

## Installation

1. Zip the ` + "`{{.Slug}}`" + ` directory or upload it as-is to ` + "`wp-content/themes/`" + `.
2. Activate it under Appearance > Themes, or run ` + "`wp theme activate {{.Slug}}`" + `.
3. Edit the front page in the Site Editor. Every section is a block pattern in the "{{.Name}}" category.

## Files
{{range .Files}}
- ` + "`{{.}}`" + `
{{- end}}
{{end}}`
