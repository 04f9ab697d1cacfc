// Package storage reads objects from S3-compatible storage.
//
// It is used as a remote template source: S3Storage implements
// template.Source, so templates can be loaded straight from a bucket.
//
//	store, err := storage.New(ctx, storage.Config{
//		Bucket: "email-templates",
//		Region: "us-east-1",
//		Prefix: "transactional",
//	})
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, mailer.WithSource(store))
//	err = m.Prepare(ctx, "welcome.html", vars) // reads transactional/welcome.html
//
// Without AccessKey and SecretKey the default AWS credential chain is used
// (environment, shared config and credentials files, instance roles).
// Set Endpoint and PathStyle for MinIO and other S3-compatible services.
package storage
