// File: database/repository/user/userMongoQueries.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"oneday/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoUserRepo) AddFavorite(ctx context.Context, id, listingID string) error {
	return r.updateOne(ctx, bson.M{"id": id}, bson.M{"$addToSet": bson.M{"favorites": listingID}})
}

func (r *MongoUserRepo) RemoveFavorite(ctx context.Context, id, listingID string) error {
	return r.updateOne(ctx, bson.M{"id": id}, bson.M{"$pull": bson.M{"favorites": listingID}})
}

// redeemFilter matches the user only while the coupon is still unused, so
// the positional update below can flip it at most once.
func redeemFilter(id, couponID string) bson.M {
	return bson.M{
		"id": id,
		"coupons": bson.M{
			"$elemMatch": bson.M{"id": couponID, "used": false},
		},
	}
}

var redeemUpdate = bson.M{"$set": bson.M{"coupons.$.used": true}}

// RedeemCoupon marks an unused coupon as used.
func (r *MongoUserRepo) RedeemCoupon(ctx context.Context, id, couponID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, redeemFilter(id, couponID), redeemUpdate)
	if err != nil {
		return false, fmt.Errorf("failed to redeem coupon %s: %w", couponID, err)
	}
	return result.ModifiedCount > 0, nil
}

// ReplaceMembership writes the membership and redeems the coupon inside one
// transaction. Either both effects are visible or neither.
func (r *MongoUserRepo) ReplaceMembership(ctx context.Context, id string, m models.Membership, couponID string) error {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	setMembership := bson.M{"$set": bson.M{"membership": m, "updatedAt": time.Now()}}
	if couponID == "" {
		return r.updateOne(ctx, bson.M{"id": id}, setMembership)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.coll.UpdateOne(sc, redeemFilter(id, couponID), redeemUpdate)
		if err != nil {
			return nil, fmt.Errorf("failed to redeem coupon %s: %w", couponID, err)
		}
		if res.ModifiedCount == 0 {
			return nil, models.NewValidationError("couponId", "사용할 수 없는 쿠폰입니다")
		}
		res, err = r.coll.UpdateOne(sc, bson.M{"id": id}, setMembership)
		if err != nil {
			return nil, fmt.Errorf("failed to set membership: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, models.ErrNotFound
		}
		return nil, nil
	})
	return err
}

func (r *MongoUserRepo) ClearMembership(ctx context.Context, id string) error {
	return r.updateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"membership": nil, "updatedAt": time.Now()}})
}
