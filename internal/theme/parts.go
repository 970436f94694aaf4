package theme

import (
	"fmt"

	"anvilwp_server/internal/blocks"
)

func headerPart() string {
	return blocks.Serialize(
		blocks.Group(blocks.Attrs{"align": "full", "className": "anvil-header", "layout": blocks.Attrs{"type": "constrained"}},
			blocks.Group(blocks.Attrs{"align": "wide", "layout": blocks.Attrs{"type": "flex", "flexWrap": "nowrap", "justifyContent": "space-between"}},
				blocks.Void("site-title", blocks.Attrs{"level": 0, "fontSize": "large"}),
				blocks.Void("navigation", blocks.Attrs{"overlayMenu": "mobile", "layout": blocks.Attrs{"type": "flex", "justifyContent": "right"}}),
			),
		),
	) + "\n"
}

func footerPart(name, tagline string, year int) string {
	about := []blocks.Node{
		blocks.Paragraph(blocks.Attrs{"fontSize": "large"}, blocks.Raw("<strong>"+string(blocks.Text(name))+"</strong>")),
	}
	if tagline != "" {
		about = append(about, blocks.Paragraph(blocks.Attrs{"className": "anvil-muted"}, blocks.Text(tagline)))
	}
	return blocks.Serialize(
		blocks.Group(blocks.Attrs{"align": "full", "className": "anvil-footer anvil-section", "layout": blocks.Attrs{"type": "constrained"}},
			blocks.Columns(blocks.Attrs{"align": "wide"},
				blocks.Column(blocks.Attrs{"width": "50%"}, about...),
				blocks.Column(nil,
					blocks.Heading(blocks.Attrs{"fontSize": "medium"}, 4, blocks.Text("Enlaces")),
					blocks.Void("navigation", blocks.Attrs{"overlayMenu": "never", "layout": blocks.Attrs{"type": "flex", "orientation": "vertical"}}),
				),
				blocks.Column(nil,
					blocks.Heading(blocks.Attrs{"fontSize": "medium"}, 4, blocks.Text("Contacto")),
					blocks.Paragraph(blocks.Attrs{"className": "anvil-muted"}, blocks.Raw(`<a href="/#contact">Escríbenos</a>`)),
				),
			),
			blocks.Separator(blocks.Attrs{"className": "is-style-wide"}),
			blocks.Paragraph(blocks.Attrs{"align": "center", "className": "anvil-muted", "fontSize": "small"},
				blocks.Raw(fmt.Sprintf("© %d %s. Powered by AnvilWP", year, blocks.Text(name)))),
		),
	) + "\n"
}

// convertedPart wraps markup lifted from an HTML page as a template part.
func convertedPart(class, markup string) string {
	return blocks.Serialize(
		blocks.Group(blocks.Attrs{"align": "full", "className": class + " anvil-converted", "layout": blocks.Attrs{"type": "default"}},
			blocks.CustomHTML(markup),
		),
	) + "\n"
}

// pageTemplate lays out header, main and footer. An empty body falls back
// to the post content.
func pageTemplate(body ...blocks.Node) string {
	if len(body) == 0 {
		body = []blocks.Node{blocks.Void("post-content", blocks.Attrs{"layout": blocks.Attrs{"type": "constrained"}})}
	}
	return blocks.Serialize(
		blocks.TemplatePart("header", "header"),
		blocks.Group(blocks.Attrs{"tagName": "main", "align": "full", "layout": blocks.Attrs{"type": "default"}}, body...),
		blocks.TemplatePart("footer", "footer"),
	) + "\n"
}

func patternRefs(slugs []string) []blocks.Node {
	nodes := make([]blocks.Node, 0, len(slugs))
	for _, s := range slugs {
		nodes = append(nodes, blocks.Pattern(s))
	}
	return nodes
}

func singularTemplate(withMeta bool) string {
	inner := []blocks.Node{blocks.Void("post-title", blocks.Attrs{"level": 1})}
	if withMeta {
		inner = append(inner,
			blocks.Void("post-date", blocks.Attrs{"className": "anvil-muted"}),
			blocks.Void("post-featured-image", blocks.Attrs{"align": "wide"}),
		)
	}
	inner = append(inner, blocks.Void("post-content", blocks.Attrs{"layout": blocks.Attrs{"type": "constrained"}}))
	return pageTemplate(
		blocks.Group(blocks.Attrs{"className": "anvil-section", "layout": blocks.Attrs{"type": "constrained", "contentSize": "760px"}}, inner...),
	)
}

const themeJS = `(function () {
  'use strict';

  var sections = document.querySelectorAll('.anvil-section, .anvil-hero-inner');
  if ('IntersectionObserver' in window) {
    var observer = new IntersectionObserver(function (entries) {
      entries.forEach(function (entry) {
        if (entry.isIntersecting) {
          entry.target.classList.add('is-visible');
          observer.unobserve(entry.target);
        }
      });
    }, { threshold: 0.1 });
    sections.forEach(function (el) {
      el.classList.add('anvil-reveal');
      observer.observe(el);
    });
  }

  var messages = {
    sent: 'Gracias. Hemos recibido tu mensaje.',
    error: 'No se pudo enviar el mensaje. Inténtalo de nuevo.'
  };

  document.querySelectorAll('form.anvil-contact-form').forEach(function (form) {
    var status = form.querySelector('.anvil-contact-status');
    var initial = new URLSearchParams(window.location.search).get('contact');
    if (status && messages[initial]) {
      status.textContent = messages[initial];
    }
    if (!window.fetch || !window.FormData) {
      return;
    }
    form.addEventListener('submit', function (event) {
      event.preventDefault();
      var button = form.querySelector('button[type="submit"]');
      if (button) {
        button.disabled = true;
      }
      fetch(form.action, { method: 'POST', body: new FormData(form), credentials: 'same-origin' })
        .then(function (res) {
          var ok = res.ok && res.url.indexOf('contact=sent') !== -1;
          if (status) {
            status.textContent = ok ? messages.sent : messages.error;
          }
          if (ok) {
            form.reset();
          }
        })
        .catch(function () {
          if (status) {
            status.textContent = messages.error;
          }
        })
        .then(function () {
          if (button) {
            button.disabled = false;
          }
        });
    });
  });
})();
`
