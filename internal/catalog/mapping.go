package catalog

import (
	"github.com/JaimeStill/prism/pkg/repository"
)

func scanProduct(s repository.Scanner) (Product, error) {
	var p Product
	err := s.Scan(&p.ProductKey, &p.SystemName, &p.FriendlyName)
	return p, err
}

func scanDetail(s repository.Scanner) (ProductDetail, error) {
	var d ProductDetail
	err := s.Scan(
		&d.ProductURL,
		&d.ProductCode,
		&d.ProductTitle,
		&d.Category0,
		&d.Category1,
		&d.Category2,
		&d.Category3,
		&d.DescriptionText,
		&d.SpecificationText,
		&d.ImageURLs[0],
		&d.ImageURLs[1],
		&d.ImageURLs[2],
		&d.ImageURLs[3],
		&d.ImageURLs[4],
		&d.ImageURLs[5],
		&d.ImageURLs[6],
		&d.ImageURLs[7],
		&d.ImageURLs[8],
		&d.ImageURLs[9],
		&d.Price,
		&d.WasPrice,
		&d.Promotion,
		&d.ReviewRating,
		&d.ReviewCount,
	)
	return d, err
}

func scanAttribute(s repository.Scanner) (Attribute, error) {
	var a Attribute
	err := s.Scan(&a.AttributeKey, &a.Name)
	return a, err
}

func scanAttributeValue(s repository.Scanner) (AttributeValue, error) {
	var v AttributeValue
	err := s.Scan(
		&v.ProductKey,
		&v.AttributeKey,
		&v.Value,
		&v.Unit,
		&v.MinimumValue,
		&v.MinimumUnit,
		&v.MaximumValue,
		&v.MaximumUnit,
		&v.RangeQualifierEnum,
	)
	return v, err
}
