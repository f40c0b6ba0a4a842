package core

import (
	"Showcase/entity"
	"Showcase/internal/gallery"
	"Showcase/internal/locale"
	"Showcase/internal/responder"
	"context"
)

// Page builds the showcase view of the requested product.
func (c *Core) Page(ctx context.Context, sessionID, requested string) (*entity.PageView, error) {
	sess, err := c.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lang := sess.Language

	view := &entity.PageView{
		Language:  lang,
		PanelHint: c.texts.T(lang, locale.PanelHint),
		Images:    []entity.GalleryImage{},
		Logo:      c.resolveLogo(ctx),
	}

	p, key, _ := c.product(requested)
	if p == nil {
		view.Title = c.texts.T(lang, locale.ProductNotFound)
		return view, nil
	}

	view.Found = true
	view.Key = key
	view.Title = c.title(p, lang)
	view.SizeText = p.SizeText
	view.PriceLabel = responder.FormatPrice(p.Price)
	view.Brand = p.Brand

	alt := p.Title
	if alt == "" {
		alt = c.texts.T(lang, locale.ProductImage)
	}
	if c.gallery != nil {
		for _, img := range c.gallery.ResolveAll(ctx, p.Images) {
			view.Images = append(view.Images, entity.GalleryImage{Name: img.Name, Src: img.Src, Alt: alt})
		}
	}
	view.Carousel = gallery.Carousel{Len: len(view.Images)}.Go(sess.CarouselIndex(key)).Index

	return view, nil
}

func (c *Core) resolveLogo(ctx context.Context) entity.LogoView {
	if c.gallery == nil || len(c.logo) == 0 {
		return entity.LogoView{Fallback: true}
	}
	src, ok := c.gallery.ResolveLogo(ctx, c.logo, c.logoGrace)
	return entity.LogoView{Src: src, Fallback: !ok}
}
