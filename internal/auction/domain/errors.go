package domain

import "errors"

var (
	ErrItemNotFound     = errors.New("auction item not found")
	ErrAuctionClosed    = errors.New("auction is closed")
	ErrBidTooLow        = errors.New("bid amount is too low")
	ErrSelfBid          = errors.New("seller cannot bid on their own item")
	ErrNoWinner         = errors.New("auction has no winner")
	ErrNotWinner        = errors.New("caller is not the auction winner")
	ErrAlreadyPurchased = errors.New("item is already purchased")
	ErrInvalidItem      = errors.New("invalid auction item parameters")
)
